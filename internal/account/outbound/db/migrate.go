package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/shandysiswandi/otpauth/internal/account/outbound/db/migrations"
)

// Migrate applies every pending account migration.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	conn := stdlib.OpenDBFromPool(pool)
	defer conn.Close()

	if err := goose.UpContext(ctx, conn, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
