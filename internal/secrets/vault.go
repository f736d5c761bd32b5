package secrets

import (
	"context"
	"fmt"
	"os"

	vault "github.com/hashicorp/vault/api"

	"mongo-backup/internal/errdefs"
)

const (
	approleSecretIDPath = "auth/approle/role/%s/secret-id"
	approleLoginPath    = "auth/approle/login"
)

// VaultStore reads credential bundles from HashiCorp Vault.
type VaultStore struct {
	api *vault.Client
}

// VaultOptions configures the Vault client. Empty fields fall back to the
// standard VAULT_ADDR / VAULT_TOKEN environment variables.
type VaultOptions struct {
	Address     string
	Token       string
	AppRoleID   string
	AppRoleName string
}

// NewVaultStore creates a Vault-backed secret store. When both AppRole
// fields are set it performs an AppRole login, otherwise the static token
// is used.
func NewVaultStore(ctx context.Context, opts VaultOptions) (*VaultStore, error) {
	apiCfg := vault.DefaultConfig()
	if opts.Address != "" {
		apiCfg.Address = opts.Address
	}

	api, err := vault.NewClient(apiCfg)
	if err != nil {
		return nil, fmt.Errorf("create vault client: %w", err)
	}

	token := opts.Token
	if token == "" {
		token = os.Getenv("VAULT_TOKEN")
	}
	if token != "" {
		api.SetToken(token)
	}

	s := &VaultStore{api: api}
	if opts.AppRoleID != "" && opts.AppRoleName != "" {
		if err := s.loginAppRole(ctx, opts.AppRoleID, opts.AppRoleName); err != nil {
			return nil, fmt.Errorf("approle login: %w", err)
		}
	}
	return s, nil
}

// Fetch implements Store. The secret is expected as a flat key/value
// object, either directly at the path or under the KV v2 "data" wrapper.
func (s *VaultStore) Fetch(ctx context.Context, name string) (*Credentials, error) {
	const op = "vault.fetch"

	secret, err := s.api.Logical().ReadWithContext(ctx, name)
	if err != nil {
		return nil, errdefs.New(errdefs.KindCredential, op, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, errdefs.Newf(errdefs.KindCredential, op, "no data found at path %q", name)
	}

	data := secret.Data
	if inner, ok := secret.Data["data"].(map[string]any); ok {
		data = inner
	}

	return decode(op, data)
}

func (s *VaultStore) loginAppRole(ctx context.Context, roleID, roleName string) error {
	path := fmt.Sprintf(approleSecretIDPath, roleName)
	resp, err := s.api.Logical().WriteWithContext(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("generate secret_id: %w", err)
	}
	sid, ok := resp.Data["secret_id"].(string)
	if !ok || sid == "" {
		return fmt.Errorf("no secret_id returned from %s", path)
	}

	loginResp, err := s.api.Logical().WriteWithContext(ctx, approleLoginPath, map[string]any{
		"role_id":   roleID,
		"secret_id": sid,
	})
	if err != nil {
		return fmt.Errorf("approle login request: %w", err)
	}
	if loginResp.Auth == nil || loginResp.Auth.ClientToken == "" {
		return fmt.Errorf("no token in login response")
	}
	s.api.SetToken(loginResp.Auth.ClientToken)
	return nil
}
