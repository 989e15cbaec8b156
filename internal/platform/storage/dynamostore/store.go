// Package dynamostore reads dashboard data from DynamoDB. Users live in a
// table keyed by alias, metrics in a table keyed by (user_alias, metric_name).
package dynamostore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"perfdash/internal/domain/dashboard"
)

type Store struct {
	Client       dynamodbiface.DynamoDBAPI
	UsersTable   string
	MetricsTable string
}

func New(sess *session.Session, usersTable, metricsTable string) *Store {
	return NewWithClient(dynamodb.New(sess), usersTable, metricsTable)
}

func NewWithClient(client dynamodbiface.DynamoDBAPI, usersTable, metricsTable string) *Store {
	return &Store{Client: client, UsersTable: usersTable, MetricsTable: metricsTable}
}

func (s *Store) ListUsers(ctx context.Context, limit int) dashboard.Result {
	input := &dynamodb.ScanInput{TableName: aws.String(s.UsersTable)}
	if limit > 0 {
		input.Limit = aws.Int64(int64(limit))
	}
	out, err := s.Client.ScanWithContext(ctx, input)
	if err != nil {
		return dashboard.Fault(fmt.Errorf("scan %s: %w", s.UsersTable, err))
	}
	return decodeItems(out.Items)
}

func (s *Store) QueryMetrics(ctx context.Context, alias string) dashboard.Result {
	out, err := s.Client.QueryWithContext(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.MetricsTable),
		KeyConditionExpression: aws.String("user_alias = :ua"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":ua": {S: aws.String(alias)},
		},
	})
	if err != nil {
		return dashboard.Fault(fmt.Errorf("query %s for %q: %w", s.MetricsTable, alias, err))
	}
	return decodeItems(out.Items)
}

// ListTeam runs a single filtered scan page. Like ListUsers it does not
// follow LastEvaluatedKey.
func (s *Store) ListTeam(ctx context.Context, managerAlias string) dashboard.Result {
	out, err := s.Client.ScanWithContext(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(s.UsersTable),
		FilterExpression: aws.String("supervisor = :mgmt"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":mgmt": {S: aws.String(managerAlias)},
		},
	})
	if err != nil {
		return dashboard.Fault(fmt.Errorf("scan %s for supervisor %q: %w", s.UsersTable, managerAlias, err))
	}
	return decodeItems(out.Items)
}

func (s *Store) Ping(ctx context.Context) error {
	_, err := s.Client.DescribeTableWithContext(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.UsersTable)})
	if err != nil {
		return fmt.Errorf("describe %s: %w", s.UsersTable, err)
	}
	return nil
}

func decodeItems(items []map[string]*dynamodb.AttributeValue) dashboard.Result {
	if len(items) == 0 {
		return dashboard.Empty()
	}
	var raw []map[string]any
	if err := dynamodbattribute.UnmarshalListOfMaps(items, &raw); err != nil {
		return dashboard.Fault(fmt.Errorf("decode items: %w", err))
	}
	records := make([]dashboard.Record, 0, len(raw))
	for _, item := range raw {
		records = append(records, dashboard.Record(item))
	}
	return dashboard.Found(records)
}
