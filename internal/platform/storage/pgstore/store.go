// Package pgstore reads dashboard data from PostgreSQL. Rows are returned as
// JSON documents so extra columns flow through to the record formatters.
package pgstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"perfdash/internal/domain/dashboard"
)

const Schema = `
CREATE TABLE IF NOT EXISTS dashboard_users (
  alias              TEXT PRIMARY KEY,
  name               TEXT NOT NULL DEFAULT '',
  job_title          TEXT NOT NULL DEFAULT '',
  staff_level        TEXT NOT NULL DEFAULT '',
  supervisor         TEXT NOT NULL DEFAULT '',
  region             TEXT NOT NULL DEFAULT '',
  overall_attainment DOUBLE PRECISION,
  metrics_count      INTEGER,
  on_track_metrics   INTEGER,
  at_risk_metrics    INTEGER
);
CREATE INDEX IF NOT EXISTS dashboard_users_supervisor_idx ON dashboard_users (supervisor);

CREATE TABLE IF NOT EXISTS dashboard_metrics (
  user_alias         TEXT NOT NULL,
  metric_name        TEXT NOT NULL,
  display_name       TEXT NOT NULL DEFAULT '',
  annual_target      DOUBLE PRECISION NOT NULL DEFAULT 0,
  actual_value       DOUBLE PRECISION NOT NULL DEFAULT 0,
  attainment_percent DOUBLE PRECISION NOT NULL DEFAULT 0,
  metric_type        TEXT NOT NULL DEFAULT 'count',
  PRIMARY KEY (user_alias, metric_name)
);
`

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Store struct {
	DB Querier
}

func New(db Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) ListUsers(ctx context.Context, limit int) dashboard.Result {
	if limit <= 0 {
		limit = dashboard.DefaultUsersLimit
	}
	return s.queryDocuments(ctx, `
    SELECT to_jsonb(u)
    FROM dashboard_users u
    ORDER BY u.alias
    LIMIT $1
  `, limit)
}

func (s *Store) QueryMetrics(ctx context.Context, alias string) dashboard.Result {
	return s.queryDocuments(ctx, `
    SELECT to_jsonb(m)
    FROM dashboard_metrics m
    WHERE m.user_alias = $1
    ORDER BY m.metric_name
  `, alias)
}

func (s *Store) ListTeam(ctx context.Context, managerAlias string) dashboard.Result {
	return s.queryDocuments(ctx, `
    SELECT to_jsonb(u)
    FROM dashboard_users u
    WHERE u.supervisor = $1
    ORDER BY u.alias
  `, managerAlias)
}

func (s *Store) queryDocuments(ctx context.Context, sql string, args ...any) dashboard.Result {
	rows, err := s.DB.Query(ctx, sql, args...)
	if err != nil {
		return dashboard.Fault(fmt.Errorf("query: %w", err))
	}
	defer rows.Close()

	var records []dashboard.Record
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return dashboard.Fault(fmt.Errorf("scan: %w", err))
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var rec dashboard.Record
		if err := dec.Decode(&rec); err != nil {
			return dashboard.Fault(fmt.Errorf("decode row: %w", err))
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return dashboard.Fault(fmt.Errorf("rows: %w", err))
	}
	return dashboard.Found(records)
}
