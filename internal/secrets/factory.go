package secrets

import (
	"context"
	"fmt"

	"mongo-backup/internal/config"
)

// NewStore creates a secret store based on configuration.
func NewStore(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.SecretProvider {
	case "vault":
		return NewVaultStore(ctx, VaultOptions{
			Address:     cfg.Vault.Address,
			Token:       cfg.Vault.Token,
			AppRoleID:   cfg.Vault.AppRoleID,
			AppRoleName: cfg.Vault.AppRoleName,
		})
	case "awssm":
		return NewSecretsManagerStore(ctx, cfg.AWSRegion)
	default:
		return nil, fmt.Errorf("unsupported secret provider: %s", cfg.SecretProvider)
	}
}
