package db

import (
	"context"
	"os"
	"testing"

	"perfdash/internal/platform/config"
)

func TestSummarizeSample(t *testing.T) {
	member := summarizeSample("rbrown")
	if member.MetricsCount != 3 {
		t.Fatalf("expected 3 metrics, got %d", member.MetricsCount)
	}
	if member.OnTrackMetrics+member.AtRiskMetrics != member.MetricsCount {
		t.Fatalf("on track and at risk should cover every metric: %+v", member)
	}
	if member.OverallAttainment < 74 || member.OverallAttainment > 90 {
		t.Fatalf("unexpected overall attainment %v", member.OverallAttainment)
	}
}

func TestMigrateAndSeed(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := Connect(ctx, config.Config{DatabaseURL: url})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if err := Migrate(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := Seed(ctx, pool); err != nil {
			t.Fatalf("seed run %d: %v", i, err)
		}
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM dashboard_metrics WHERE user_alias = 'jsmith'").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 seeded metrics, got %d", count)
	}
}
