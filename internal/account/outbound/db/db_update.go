package db

import (
	"context"

	"github.com/shandysiswandi/otpauth/internal/account/entity"
)

func (s *DB) UpdateAccountOTPByEmail(ctx context.Context, email, code string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "UpdateAccountOTPByEmail")
	defer func() { s.endSpan(span, err) }()

	account, err := scanAccount(s.conn.QueryRow(ctx, queryUpdateAccountOTPByEmail, email, code))
	if err != nil {
		return nil, s.mapError(err)
	}

	return account, nil
}

func (s *DB) ClearAccountOTP(ctx context.Context, id int64, code string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ClearAccountOTP")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, queryClearAccountOTP, id, code)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() == 1, nil
}
