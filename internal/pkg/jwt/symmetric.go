package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const minSecretLen = 64

// Symmetric signs with a shared HMAC secret.
type Symmetric struct {
	secret    []byte
	issuer    string
	audiences []string
	ttl       time.Duration
	clock     clocker
	uuid      generator
	parser    *jwt.Parser
}

// NewHS512 validates cfg and returns a Symmetric using HS512.
func NewHS512(cfg Config) (*Symmetric, error) {
	if len(cfg.Secret) < minSecretLen {
		return nil, ErrSigningKeyTooShort
	}

	s := &Symmetric{
		secret:    cfg.Secret,
		issuer:    cfg.Issuer,
		audiences: cfg.Audiences,
		ttl:       cfg.TTL,
		clock:     cfg.Clock,
		uuid:      cfg.UUID,
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if len(cfg.Audiences) > 0 {
		opts = append(opts, jwt.WithAudience(cfg.Audiences...))
	}
	s.parser = jwt.NewParser(opts...)

	return s, nil
}

func (s *Symmetric) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}

// Generate signs a token whose subject is the account id.
func (s *Symmetric) Generate(accountID int64, email string) (string, error) {
	now := s.now()

	var jti string
	if s.uuid != nil {
		jti = s.uuid.Generate()
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.FormatInt(accountID, 10),
			Issuer:    s.issuer,
			Audience:  s.audiences,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		AccountID:    accountID,
		AccountEmail: email,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(s.secret)
}

// Verify parses token and checks signature, issuer, audience and expiry.
func (s *Symmetric) Verify(token string) (Claims, error) {
	var claims Claims

	parsed, err := s.parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS512 {
			return nil, ErrInvalidSigningMethod
		}
		return s.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrTokenExpired
	case err != nil:
		return Claims{}, errors.Join(ErrInvalidToken, err)
	case !parsed.Valid:
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
