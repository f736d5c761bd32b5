package secrets

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"mongo-backup/internal/errdefs"
)

// SecretsManagerStore reads credential bundles from AWS Secrets Manager.
type SecretsManagerStore struct {
	client *secretsmanager.Client
}

// NewSecretsManagerStore creates a Secrets Manager backed store using the
// default AWS credential chain.
func NewSecretsManagerStore(ctx context.Context, region string) (*SecretsManagerStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &SecretsManagerStore{client: secretsmanager.NewFromConfig(cfg)}, nil
}

// Fetch implements Store. The secret value must be a flat key/value JSON
// object.
func (s *SecretsManagerStore) Fetch(ctx context.Context, name string) (*Credentials, error) {
	const op = "secretsmanager.fetch"

	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return nil, errdefs.New(errdefs.KindCredential, op, err)
	}
	if out.SecretString == nil {
		return nil, errdefs.Newf(errdefs.KindCredential, op, "secret %q has no string value", name)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(*out.SecretString), &data); err != nil {
		return nil, errdefs.Newf(errdefs.KindCredential, op, "secret %q is not a JSON object: %v", name, err)
	}

	return decode(op, data)
}
