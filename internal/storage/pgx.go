package storage

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entriesTable = "mirror_entries"

// Pgx keeps entries in postgres. The quota is checked against the sum of
// key and value lengths of all rows, the same accounting as Memory.
type Pgx struct {
	pool   *pgxpool.Pool
	logger logger.Logger
	quota  int
}

var _ Store = (*Pgx)(nil)

func NewPgx(pool *pgxpool.Pool, logger logger.Logger, quotaBytes int) *Pgx {
	return &Pgx{
		pool:   pool,
		logger: logger.WithComponent("MirrorStore"),
		quota:  quotaBytes,
	}
}

func (p *Pgx) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := SqBuilder.
		Select("value").
		From(entriesTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", false, ErrBadQuery
	}

	var value string
	err = p.pool.QueryRow(ctx, query, args...).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get entry %s: %w", key, err)
	}
	return value, true, nil
}

func (p *Pgx) Set(ctx context.Context, key, value string) error {
	if p.quota > 0 {
		used, err := p.usedExcluding(ctx, key)
		if err != nil {
			return err
		}
		if used+entrySize(key, value) > p.quota {
			p.logger.Warn("Entry rejected by quota", "key", key, "used", used, "quota", p.quota)
			return ErrQuotaExceeded
		}
	}

	query, args, err := SqBuilder.
		Insert(entriesTable).
		Columns("key", "value", "updated_at").
		Values(key, value, sq.Expr("now()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return ErrBadQuery
	}

	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to set entry %s: %w", key, err)
	}
	return nil
}

func (p *Pgx) Delete(ctx context.Context, key string) error {
	query, args, err := SqBuilder.
		Delete(entriesTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return ErrBadQuery
	}

	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", key, err)
	}
	return nil
}

func (p *Pgx) usedExcluding(ctx context.Context, key string) (int, error) {
	query, args, err := SqBuilder.
		Select("COALESCE(SUM(length(key) + length(value)), 0)").
		From(entriesTable).
		Where(sq.NotEq{"key": key}).
		ToSql()
	if err != nil {
		return 0, ErrBadQuery
	}

	var used int64
	if err := p.pool.QueryRow(ctx, query, args...).Scan(&used); err != nil {
		return 0, fmt.Errorf("failed to measure storage usage: %w", err)
	}
	return int(used), nil
}
