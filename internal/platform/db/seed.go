package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"perfdash/internal/domain/dashboard"
	"perfdash/internal/platform/storage/pgstore"
)

// Migrate creates the dashboard tables when they are missing.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, pgstore.Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Seed loads the sample directory and its derived metrics. Existing rows are
// left untouched so the seed can run on every start.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	team := map[string]dashboard.TeamMember{}
	for _, member := range dashboard.SampleTeam("") {
		team[member.UserAlias] = member
	}

	batch := &pgx.Batch{}
	for _, user := range dashboard.SampleUsers() {
		member, ok := team[user.Alias]
		if !ok {
			member = summarizeSample(user.Alias)
		}
		batch.Queue(`
      INSERT INTO dashboard_users (alias, name, job_title, staff_level, supervisor, region,
                                   overall_attainment, metrics_count, on_track_metrics, at_risk_metrics)
      VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
      ON CONFLICT (alias) DO NOTHING
    `, user.Alias, user.Name, user.JobTitle, user.StaffLevel, user.Supervisor, user.Region,
			member.OverallAttainment, member.MetricsCount, member.OnTrackMetrics, member.AtRiskMetrics)

		for _, m := range dashboard.SampleUserDashboard(user.Alias).Metrics {
			batch.Queue(`
        INSERT INTO dashboard_metrics (user_alias, metric_name, display_name, annual_target,
                                       actual_value, attainment_percent, metric_type)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (user_alias, metric_name) DO NOTHING
      `, user.Alias, m.MetricName, m.DisplayName, m.AnnualTarget, m.ActualValue, m.AttainmentPercent, m.MetricType)
		}
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("seed sample data: %w", err)
	}
	return tx.Commit(ctx)
}

// summarizeSample rolls a sample user's metrics up into team member figures.
func summarizeSample(alias string) dashboard.TeamMember {
	metrics := dashboard.SampleUserDashboard(alias).Metrics
	member := dashboard.TeamMember{UserAlias: alias, MetricsCount: len(metrics)}
	var total float64
	for _, m := range metrics {
		total += m.AttainmentPercent
		if m.AttainmentPercent >= dashboard.OnTrackThreshold {
			member.OnTrackMetrics++
		} else {
			member.AtRiskMetrics++
		}
	}
	if len(metrics) > 0 {
		member.OverallAttainment = total / float64(len(metrics))
	}
	return member
}
