// Package redisstore reads dashboard data from Redis hashes:
//
//	{prefix}users            field alias       -> user JSON
//	{prefix}metrics:{alias}  field metric_name -> metric JSON
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"perfdash/internal/domain/dashboard"
)

type Store struct {
	Client redis.Cmdable
	Prefix string
}

// Connect parses url and verifies the server answers PING.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func New(client redis.Cmdable, prefix string) *Store {
	return &Store{Client: client, Prefix: prefix}
}

func (s *Store) UsersKey() string {
	return s.Prefix + "users"
}

func (s *Store) MetricsKey(alias string) string {
	return s.Prefix + "metrics:" + alias
}

func (s *Store) ListUsers(ctx context.Context, limit int) dashboard.Result {
	res := s.readHash(ctx, s.UsersKey())
	if limit > 0 && len(res.Records) > limit {
		res.Records = res.Records[:limit]
	}
	return res
}

func (s *Store) QueryMetrics(ctx context.Context, alias string) dashboard.Result {
	return s.readHash(ctx, s.MetricsKey(alias))
}

func (s *Store) ListTeam(ctx context.Context, managerAlias string) dashboard.Result {
	res := s.readHash(ctx, s.UsersKey())
	if res.Status() != dashboard.ResultFound {
		return res
	}
	team := make([]dashboard.Record, 0, len(res.Records))
	for _, rec := range res.Records {
		if rec.Text("supervisor") == managerAlias {
			team = append(team, rec)
		}
	}
	return dashboard.Found(team)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

// readHash returns the hash values ordered by field name so scans with a
// limit are stable.
func (s *Store) readHash(ctx context.Context, key string) dashboard.Result {
	values, err := s.Client.HGetAll(ctx, key).Result()
	if err != nil {
		return dashboard.Fault(fmt.Errorf("hgetall %s: %w", key, err))
	}
	if len(values) == 0 {
		return dashboard.Empty()
	}

	fields := make([]string, 0, len(values))
	for field := range values {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	records := make([]dashboard.Record, 0, len(fields))
	for _, field := range fields {
		dec := json.NewDecoder(strings.NewReader(values[field]))
		dec.UseNumber()
		var rec dashboard.Record
		if err := dec.Decode(&rec); err != nil {
			return dashboard.Fault(fmt.Errorf("decode %s[%s]: %w", key, field, err))
		}
		records = append(records, rec)
	}
	return dashboard.Found(records)
}
