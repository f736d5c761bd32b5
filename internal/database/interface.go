// Package database defines narrow interfaces over the database's native
// dump, restore, and shell tools so each can be faked in tests.
package database

import "context"

// Dumper produces a point-in-time dump into a local directory.
type Dumper interface {
	// Dump writes a full dump of the configured database into outDir.
	Dump(ctx context.Context, outDir string) error
}

// Restorer materializes a dump directory into a target database.
type Restorer interface {
	// Restore loads the dump under sourceDir into targetDB. An empty
	// targetDB restores into the original database name.
	Restore(ctx context.Context, sourceDir, targetDB string) error
}

// HealthChecker verifies connectivity and reports database facts.
type HealthChecker interface {
	// Ping issues a lightweight health check using the fetched credentials.
	Ping(ctx context.Context) error

	// Info returns server and database statistics at dump time.
	Info(ctx context.Context) (*Info, error)
}

// Info describes the database at the time of a run.
type Info struct {
	Version     string `json:"version"`
	Collections int64  `json:"collections"`
	Objects     int64  `json:"objects"`
	DataSize    int64  `json:"dataSize"`
}
