package dynamostore

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"perfdash/internal/domain/dashboard"
)

type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI

	scanInputs  []*dynamodb.ScanInput
	queryInputs []*dynamodb.QueryInput
	scanOut     *dynamodb.ScanOutput
	queryOut    *dynamodb.QueryOutput
	err         error
}

func (f *fakeDynamo) ScanWithContext(_ aws.Context, in *dynamodb.ScanInput, _ ...request.Option) (*dynamodb.ScanOutput, error) {
	f.scanInputs = append(f.scanInputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return f.scanOut, nil
}

func (f *fakeDynamo) QueryWithContext(_ aws.Context, in *dynamodb.QueryInput, _ ...request.Option) (*dynamodb.QueryOutput, error) {
	f.queryInputs = append(f.queryInputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return f.queryOut, nil
}

func (f *fakeDynamo) DescribeTableWithContext(_ aws.Context, in *dynamodb.DescribeTableInput, _ ...request.Option) (*dynamodb.DescribeTableOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.DescribeTableOutput{}, nil
}

func userItem(alias, supervisor string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"alias":      {S: aws.String(alias)},
		"name":       {S: aws.String("Name " + alias)},
		"supervisor": {S: aws.String(supervisor)},
	}
}

func TestListUsersScansWithLimit(t *testing.T) {
	fake := &fakeDynamo{scanOut: &dynamodb.ScanOutput{Items: []map[string]*dynamodb.AttributeValue{
		userItem("a", "m1"), userItem("b", "m1"),
	}}}
	store := NewWithClient(fake, "users", "metrics")

	res := store.ListUsers(context.Background(), 100)
	if res.Status() != dashboard.ResultFound || len(res.Records) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Records[0].Text("alias") != "a" {
		t.Fatalf("unexpected first record: %+v", res.Records[0])
	}
	in := fake.scanInputs[0]
	if aws.StringValue(in.TableName) != "users" || aws.Int64Value(in.Limit) != 100 {
		t.Fatalf("unexpected scan input: %s", in)
	}
}

func TestQueryMetricsDecodesNumbers(t *testing.T) {
	fake := &fakeDynamo{queryOut: &dynamodb.QueryOutput{Items: []map[string]*dynamodb.AttributeValue{{
		"user_alias":    {S: aws.String("jsmith")},
		"metric_name":   {S: aws.String("win_rate")},
		"actual_value":  {N: aws.String("61")},
		"annual_target": {N: aws.String("70")},
	}}}}
	store := NewWithClient(fake, "users", "metrics")

	res := store.QueryMetrics(context.Background(), "jsmith")
	if res.Status() != dashboard.ResultFound {
		t.Fatalf("expected found, got %s (%v)", res.Status(), res.Err)
	}
	metric := dashboard.FormatMetric(res.Records[0])
	if metric.ActualValue != 61 || metric.AnnualTarget != 70 || metric.MetricName != "win_rate" {
		t.Fatalf("unexpected metric: %+v", metric)
	}

	in := fake.queryInputs[0]
	if aws.StringValue(in.TableName) != "metrics" || aws.StringValue(in.KeyConditionExpression) != "user_alias = :ua" {
		t.Fatalf("unexpected query input: %s", in)
	}
	if aws.StringValue(in.ExpressionAttributeValues[":ua"].S) != "jsmith" {
		t.Fatalf("unexpected key value: %s", in)
	}
}

func TestListTeamFiltersBySupervisor(t *testing.T) {
	fake := &fakeDynamo{scanOut: &dynamodb.ScanOutput{}}
	store := NewWithClient(fake, "users", "metrics")

	res := store.ListTeam(context.Background(), "manager1")
	if res.Status() != dashboard.ResultEmpty {
		t.Fatalf("expected empty, got %s", res.Status())
	}
	in := fake.scanInputs[0]
	if aws.StringValue(in.FilterExpression) != "supervisor = :mgmt" || aws.StringValue(in.ExpressionAttributeValues[":mgmt"].S) != "manager1" {
		t.Fatalf("unexpected scan input: %s", in)
	}
	if in.Limit != nil {
		t.Fatal("team scan should not be limited")
	}
}

func TestFaultsAreWrapped(t *testing.T) {
	boom := errors.New("ResourceNotFoundException")
	store := NewWithClient(&fakeDynamo{err: boom}, "users", "metrics")
	ctx := context.Background()

	for name, res := range map[string]dashboard.Result{
		"users":   store.ListUsers(ctx, 10),
		"metrics": store.QueryMetrics(ctx, "x"),
		"team":    store.ListTeam(ctx, "m"),
	} {
		if res.Status() != dashboard.ResultFault || !errors.Is(res.Err, boom) {
			t.Fatalf("%s: expected wrapped fault, got %+v", name, res)
		}
	}
	if err := store.Ping(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected ping to fail with %v, got %v", boom, err)
	}
}
