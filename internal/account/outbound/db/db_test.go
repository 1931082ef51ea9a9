package db

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shandysiswandi/otpauth/internal/account/entity"
	"github.com/shandysiswandi/otpauth/internal/pkg/goerror"
	"github.com/shandysiswandi/otpauth/internal/pkg/instrument"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"id", "full_name", "email", "otp", "created_at"}

var createdAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func ptr(s string) *string { return &s }

func newMock(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})

	return NewDB(mock, instrument.NewNoop()), mock
}

func TestMapError(t *testing.T) {
	s := &DB{}
	boom := errors.New("boom")

	assert.NoError(t, s.mapError(nil))
	assert.ErrorIs(t, s.mapError(pgx.ErrNoRows), goerror.ErrNotFound)
	assert.ErrorIs(t, s.mapError(&pgconn.PgError{Code: "23505"}), goerror.ErrConflict)
	assert.ErrorIs(t, s.mapError(boom), boom)
}

func TestGetAccountByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		s, mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(queryGetAccountByEmail)).
			WithArgs("ada@example.com").
			WillReturnRows(pgxmock.NewRows(columns).AddRow(int64(7), "Ada", "ada@example.com", ptr("123456"), createdAt))

		got, err := s.GetAccountByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, &entity.Account{
			ID:        7,
			FullName:  "Ada",
			Email:     "ada@example.com",
			OTP:       ptr("123456"),
			CreatedAt: createdAt,
		}, got)
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(queryGetAccountByEmail)).
			WithArgs("nobody@example.com").
			WillReturnError(pgx.ErrNoRows)

		_, err := s.GetAccountByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, goerror.ErrNotFound)
	})
}

func TestGetAccountByID(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(queryGetAccountByID)).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(columns).AddRow(int64(7), "Ada", "ada@example.com", (*string)(nil), createdAt))

	got, err := s.GetAccountByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, got.OTP)
	assert.False(t, got.HasPendingOTP())
}

func TestCreateAccount(t *testing.T) {
	ctx := context.Background()
	in := entity.NewAccount{ID: 7, FullName: "Ada", Email: "ada@example.com", OTP: "123456", CreatedAt: createdAt}

	t.Run("inserted", func(t *testing.T) {
		s, mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(queryCreateAccount)).
			WithArgs(in.ID, in.FullName, in.Email, in.OTP, in.CreatedAt).
			WillReturnRows(pgxmock.NewRows(columns).AddRow(int64(7), "Ada", "ada@example.com", ptr("123456"), createdAt))

		got, err := s.CreateAccount(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
		assert.Equal(t, "123456", *got.OTP)
	})

	t.Run("unique violation", func(t *testing.T) {
		s, mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(queryCreateAccount)).
			WithArgs(in.ID, in.FullName, in.Email, in.OTP, in.CreatedAt).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"})

		_, err := s.CreateAccount(ctx, in)
		assert.ErrorIs(t, err, goerror.ErrConflict)
	})
}

func TestUpdateAccountOTPByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("updated", func(t *testing.T) {
		s, mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(queryUpdateAccountOTPByEmail)).
			WithArgs("ada@example.com", "654321").
			WillReturnRows(pgxmock.NewRows(columns).AddRow(int64(7), "Ada", "ada@example.com", ptr("654321"), createdAt))

		got, err := s.UpdateAccountOTPByEmail(ctx, "ada@example.com", "654321")
		require.NoError(t, err)
		assert.Equal(t, "654321", *got.OTP)
	})

	t.Run("no account", func(t *testing.T) {
		s, mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(queryUpdateAccountOTPByEmail)).
			WithArgs("nobody@example.com", "654321").
			WillReturnError(pgx.ErrNoRows)

		_, err := s.UpdateAccountOTPByEmail(ctx, "nobody@example.com", "654321")
		assert.ErrorIs(t, err, goerror.ErrNotFound)
	})
}

func TestClearAccountOTP(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		result  pgconn.CommandTag
		err     error
		want    bool
		wantErr error
	}{
		{name: "cleared", result: pgxmock.NewResult("UPDATE", 1), want: true},
		{name: "already consumed", result: pgxmock.NewResult("UPDATE", 0), want: false},
		{name: "store failure", err: errors.New("conn reset"), wantErr: errors.New("conn reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMock(t)
			exp := mock.ExpectExec(regexp.QuoteMeta(queryClearAccountOTP)).WithArgs(int64(7), "123456")
			if tt.err != nil {
				exp.WillReturnError(tt.err)
			} else {
				exp.WillReturnResult(tt.result)
			}

			got, err := s.ClearAccountOTP(ctx, 7, "123456")
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
