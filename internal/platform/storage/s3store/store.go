// Package s3store serves dashboard data from JSON snapshots in the dashboard
// data bucket:
//
//	{prefix}users.json            array of user items
//	{prefix}metrics/{alias}.json  array of metric items for one user
//
// A missing object is treated as "no data", not as a fault.
package s3store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"perfdash/internal/domain/dashboard"
)

const maxSnapshotBytes = 8 << 20

type API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

type Store struct {
	Client API
	Bucket string
	Prefix string
}

// New builds the client from cfg. An endpoint override implies an
// S3-compatible server, which is addressed path-style.
func New(cfg aws.Config, bucket, prefix string) *Store {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.BaseEndpoint != nil
	})
	return NewWithClient(client, bucket, prefix)
}

func NewWithClient(client API, bucket, prefix string) *Store {
	return &Store{Client: client, Bucket: bucket, Prefix: prefix}
}

func (s *Store) ListUsers(ctx context.Context, limit int) dashboard.Result {
	res := s.readSnapshot(ctx, s.key("users.json"))
	if res.Status() != dashboard.ResultFound {
		return res
	}
	if limit > 0 && len(res.Records) > limit {
		res.Records = res.Records[:limit]
	}
	return res
}

func (s *Store) QueryMetrics(ctx context.Context, alias string) dashboard.Result {
	return s.readSnapshot(ctx, s.key("metrics/"+alias+".json"))
}

func (s *Store) ListTeam(ctx context.Context, managerAlias string) dashboard.Result {
	res := s.readSnapshot(ctx, s.key("users.json"))
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
	if _, err := s.Client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.Bucket)}); err != nil {
		return fmt.Errorf("head bucket %s: %w", s.Bucket, err)
	}
	return nil
}

func (s *Store) key(name string) string {
	return s.Prefix + name
}

func (s *Store) readSnapshot(ctx context.Context, key string) dashboard.Result {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return dashboard.Empty()
		}
		return dashboard.Fault(fmt.Errorf("get s3://%s/%s: %w", s.Bucket, key, err))
	}
	defer out.Body.Close()

	dec := json.NewDecoder(io.LimitReader(out.Body, maxSnapshotBytes))
	dec.UseNumber()
	var records []dashboard.Record
	if err := dec.Decode(&records); err != nil {
		return dashboard.Fault(fmt.Errorf("decode s3://%s/%s: %w", s.Bucket, key, err))
	}
	return dashboard.Found(records)
}
