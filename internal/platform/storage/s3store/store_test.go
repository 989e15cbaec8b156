package s3store

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"perfdash/internal/domain/dashboard"
)

type fakeS3 struct {
	objects map[string]string
	err     error
	keys    []string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Key)
	f.keys = append(f.keys, aws.ToString(in.Bucket)+"/"+key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (f *fakeS3) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &s3.HeadBucketOutput{}, nil
}

const usersJSON = `[
  {"alias": "a", "name": "A", "supervisor": "m1"},
  {"alias": "b", "name": "B", "supervisor": "m2"},
  {"alias": "c", "name": "C", "supervisor": "m1", "overall_attainment": 91.5}
]`

func TestListUsersAppliesLimit(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"snap/users.json": usersJSON}}
	store := NewWithClient(fake, "bucket", "snap/")

	res := store.ListUsers(context.Background(), 2)
	if res.Status() != dashboard.ResultFound || len(res.Records) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if fake.keys[0] != "bucket/snap/users.json" {
		t.Fatalf("unexpected key: %v", fake.keys)
	}
}

func TestListTeamFiltersInProcess(t *testing.T) {
	store := NewWithClient(&fakeS3{objects: map[string]string{"users.json": usersJSON}}, "bucket", "")

	res := store.ListTeam(context.Background(), "m1")
	if len(res.Records) != 2 {
		t.Fatalf("expected two members, got %+v", res.Records)
	}
	member := dashboard.TeamMemberFromRecord(res.Records[1])
	if member.UserAlias != "c" || member.OverallAttainment != 91.5 {
		t.Fatalf("unexpected member: %+v", member)
	}

	none := store.ListTeam(context.Background(), "nobody")
	if none.Status() != dashboard.ResultEmpty {
		t.Fatalf("expected empty team, got %s", none.Status())
	}
}

func TestQueryMetricsMissingObjectIsEmpty(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{
		"metrics/jsmith.json": `[{"metric_name": "win_rate", "actual_value": 61, "annual_target": 70}]`,
	}}
	store := NewWithClient(fake, "bucket", "")

	found := store.QueryMetrics(context.Background(), "jsmith")
	if found.Status() != dashboard.ResultFound {
		t.Fatalf("expected found, got %s (%v)", found.Status(), found.Err)
	}
	if m := dashboard.FormatMetric(found.Records[0]); m.ActualValue != 61 || m.AnnualTarget != 70 {
		t.Fatalf("unexpected metric: %+v", m)
	}

	missing := store.QueryMetrics(context.Background(), "nobody")
	if missing.Status() != dashboard.ResultEmpty {
		t.Fatalf("expected empty, got %s (%v)", missing.Status(), missing.Err)
	}
}

func TestFaults(t *testing.T) {
	boom := errors.New("AccessDenied")
	store := NewWithClient(&fakeS3{err: boom}, "bucket", "")
	if res := store.ListUsers(context.Background(), 10); !errors.Is(res.Err, boom) {
		t.Fatalf("expected wrapped fault, got %+v", res)
	}
	if err := store.Ping(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected ping fault, got %v", err)
	}

	corrupt := NewWithClient(&fakeS3{objects: map[string]string{"users.json": "{not json"}}, "bucket", "")
	if res := corrupt.ListUsers(context.Background(), 10); res.Status() != dashboard.ResultFault {
		t.Fatalf("expected decode fault, got %s", res.Status())
	}
}
