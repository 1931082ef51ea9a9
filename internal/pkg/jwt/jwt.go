package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidSigningMethod = errors.New("jwt: invalid signing method")
	ErrSigningKeyTooShort   = errors.New("jwt: HS512 signing key must be at least 64 bytes")
	ErrTokenExpired         = errors.New("jwt: token has expired")
	ErrInvalidToken         = errors.New("jwt: invalid token")
)

// JWT generates and verifies session tokens.
type JWT interface {
	Generate(accountID int64, email string) (string, error)
	Verify(token string) (Claims, error)
}

type clocker interface {
	Now() time.Time
}

type generator interface {
	Generate() string
}

// Config is read from the jwt.* keys.
type Config struct {
	Secret    []byte
	Issuer    string
	Audiences []string
	TTL       time.Duration
	Clock     clocker
	// UUID fills the jti claim.
	UUID generator
}

// Claims are the registered claims plus the account the session belongs to.
type Claims struct {
	jwt.RegisteredClaims
	AccountID    int64  `json:"account_id,string"`
	AccountEmail string `json:"account_email"`
}
