// Package secrets fetches the credential bundle from a secret store.
package secrets

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"mongo-backup/internal/errdefs"
)

// Store reads a named secret from an external secret store.
type Store interface {
	// Fetch retrieves and parses the credential bundle stored under name.
	Fetch(ctx context.Context, name string) (*Credentials, error)
}

// Credentials is the flat bundle the secret store holds for one service.
// It is fetched once per run and never written to disk.
type Credentials struct {
	AdminUsername string `mapstructure:"admin_username"`
	AdminPassword string `mapstructure:"admin_password"`
	AppUsername   string `mapstructure:"app_username"`
	AppPassword   string `mapstructure:"app_password"`
	Host          string `mapstructure:"host"`
	Port          string `mapstructure:"port"`
	Database      string `mapstructure:"database"`
	AuthSource    string `mapstructure:"auth_source"`
	Bucket        string `mapstructure:"bucket"`
}

// decode maps a raw secret payload onto Credentials and checks every
// required field is present. The bucket identifier is optional; the auth
// source defaults to admin.
func decode(op string, data map[string]any) (*Credentials, error) {
	creds := &Credentials{}
	if err := mapstructure.Decode(data, creds); err != nil {
		return nil, errdefs.New(errdefs.KindCredential, op, err)
	}

	required := []struct {
		field string
		value string
	}{
		{"admin_username", creds.AdminUsername},
		{"admin_password", creds.AdminPassword},
		{"app_username", creds.AppUsername},
		{"app_password", creds.AppPassword},
		{"host", creds.Host},
		{"port", creds.Port},
		{"database", creds.Database},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, errdefs.Newf(errdefs.KindCredential, op, "secret is missing required field %q", r.field)
		}
	}

	if creds.AuthSource == "" {
		creds.AuthSource = "admin"
	}
	return creds, nil
}

// AdminURI builds a connection string for the admin user, suitable for the
// dump and restore tools.
func (c *Credentials) AdminURI() string {
	return fmt.Sprintf("mongodb://%s:%s@%s:%s/?authSource=%s",
		c.AdminUsername, c.AdminPassword, c.Host, c.Port, c.AuthSource)
}
