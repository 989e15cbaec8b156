package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsv1 "github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"

	"perfdash/internal/platform/config"
)

// NewSession builds the v1 SDK session shared by the DynamoDB and Secrets
// Manager clients. Credentials come from the default provider chain.
func NewSession(cfg config.Config) (*session.Session, error) {
	awsCfg := &awsv1.Config{Region: awsv1.String(cfg.AWSRegion)}
	if cfg.AWSEndpoint != "" {
		awsCfg.Endpoint = awsv1.String(cfg.AWSEndpoint)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	return sess, nil
}

// LoadConfig builds the v2 SDK configuration used by the S3 client.
func LoadConfig(ctx context.Context, cfg config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	if cfg.AWSEndpoint != "" {
		awsCfg.BaseEndpoint = aws.String(cfg.AWSEndpoint)
	}
	return awsCfg, nil
}
