package db

import (
	"context"

	"github.com/shandysiswandi/otpauth/internal/account/entity"
)

func (s *DB) CreateAccount(ctx context.Context, in entity.NewAccount) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "CreateAccount")
	defer func() { s.endSpan(span, err) }()

	account, err := scanAccount(s.conn.QueryRow(ctx, queryCreateAccount,
		in.ID,
		in.FullName,
		in.Email,
		in.OTP,
		in.CreatedAt,
	))
	if err != nil {
		return nil, s.mapError(err)
	}

	return account, nil
}
