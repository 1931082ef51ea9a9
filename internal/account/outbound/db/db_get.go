package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/otpauth/internal/account/entity"
)

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	if err := row.Scan(&a.ID, &a.FullName, &a.Email, &a.OTP, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *DB) GetAccountByEmail(ctx context.Context, email string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByEmail")
	defer func() { s.endSpan(span, err) }()

	account, err := scanAccount(s.conn.QueryRow(ctx, queryGetAccountByEmail, email))
	if err != nil {
		return nil, s.mapError(err)
	}

	return account, nil
}

func (s *DB) GetAccountByID(ctx context.Context, id int64) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByID")
	defer func() { s.endSpan(span, err) }()

	account, err := scanAccount(s.conn.QueryRow(ctx, queryGetAccountByID, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return account, nil
}
