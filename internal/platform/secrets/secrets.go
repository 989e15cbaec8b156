package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"

	"perfdash/internal/platform/config"
)

var ErrNotFound = errors.New("secret not found")

// Provider resolves named secrets at startup.
type Provider interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// Static serves secrets already present in configuration.
type Static map[string]string

func (s Static) GetSecret(_ context.Context, name string) (string, error) {
	value, ok := s[name]
	if !ok || value == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return value, nil
}

type AWS struct {
	Client secretsmanageriface.SecretsManagerAPI
}

func NewAWS(sess *session.Session) *AWS {
	return &AWS{Client: secretsmanager.New(sess)}
}

func (a *AWS) GetSecret(ctx context.Context, name string) (string, error) {
	out, err := a.Client.GetSecretValueWithContext(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return "", fmt.Errorf("get secret %s: %w", name, err)
	}
	value := strings.TrimSpace(aws.StringValue(out.SecretString))
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return value, nil
}

// JWTSecret returns the signing secret for bearer authentication. The env
// backend reads JWT_SECRET from cfg; the aws backend fetches JWTSecretName.
func JWTSecret(ctx context.Context, cfg config.Config, sess *session.Session) (string, error) {
	var provider Provider
	name := cfg.JWTSecretName
	switch cfg.SecretsBackend {
	case config.SecretsAWS:
		provider = NewAWS(sess)
	default:
		name = "JWT_SECRET"
		provider = Static{name: cfg.JWTSecret}
	}
	return provider.GetSecret(ctx, name)
}
