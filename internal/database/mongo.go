package database

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"mongo-backup/internal/errdefs"
	"mongo-backup/internal/secrets"
)

// Tool binary names. Overridable for tests.
const (
	dumpBin    = "mongodump"
	restoreBin = "mongorestore"
	shellBin   = "mongosh"
)

// Mongo drives mongodump, mongorestore, and mongosh against one database.
type Mongo struct {
	creds  *secrets.Credentials
	logger *zap.Logger

	dumpBin    string
	restoreBin string
	shellBin   string
}

// NewMongo creates a Mongo instance bound to the fetched credentials.
func NewMongo(creds *secrets.Credentials, logger *zap.Logger) *Mongo {
	return &Mongo{
		creds:      creds,
		logger:     logger,
		dumpBin:    dumpBin,
		restoreBin: restoreBin,
		shellBin:   shellBin,
	}
}

// Tools returns the binaries a run needs on PATH.
func (m *Mongo) Tools() []string {
	return []string{m.dumpBin, m.restoreBin, m.shellBin}
}

// authArgs builds the shared connection arguments for the admin user.
func (m *Mongo) authArgs() []string {
	return []string{
		"--host=" + m.creds.Host,
		"--port=" + m.creds.Port,
		"--username=" + m.creds.AdminUsername,
		"--password=" + m.creds.AdminPassword,
		"--authenticationDatabase=" + m.creds.AuthSource,
	}
}

// maskArgs hides the password when logging a command line.
func maskArgs(args []string) []string {
	masked := make([]string, len(args))
	for i, a := range args {
		if strings.HasPrefix(a, "--password=") {
			masked[i] = "--password=<redacted>"
		} else {
			masked[i] = a
		}
	}
	return masked
}

// Ping implements HealthChecker. It runs a ping command through the shell
// and fails on timeout or authentication rejection.
func (m *Mongo) Ping(ctx context.Context) error {
	const op = "mongo.ping"

	args := append(m.authArgs(),
		"--quiet",
		"--eval", "db.adminCommand({ping: 1}).ok",
	)

	cmd := exec.CommandContext(ctx, m.shellBin, args...)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	m.logger.Debug("pinging database", zap.Strings("args", maskArgs(args)))
	if err := cmd.Run(); err != nil {
		return errdefs.Newf(errdefs.KindConnectivity, op, "%v (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Info implements HealthChecker. It collects the server version and the
// collection/document counts of the configured database.
func (m *Mongo) Info(ctx context.Context) (*Info, error) {
	const op = "mongo.info"

	script := fmt.Sprintf(
		`const s = db.getSiblingDB(%q).stats(); print(JSON.stringify({version: db.version(), collections: s.collections, objects: s.objects, dataSize: s.dataSize}))`,
		m.creds.Database,
	)
	args := append(m.authArgs(), "--quiet", "--eval", script)

	cmd := exec.CommandContext(ctx, m.shellBin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, errdefs.Newf(errdefs.KindConnectivity, op, "%v (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}

	info := &Info{}
	if err := json.Unmarshal(bytes.TrimSpace(out), info); err != nil {
		return nil, errdefs.Newf(errdefs.KindConnectivity, op, "unexpected shell output %q: %v", strings.TrimSpace(string(out)), err)
	}
	return info, nil
}

// Dump implements Dumper. It writes a directory-format dump of the
// configured database into outDir and fails when the tool exits non-zero
// or produces an empty directory.
func (m *Mongo) Dump(ctx context.Context, outDir string) error {
	const op = "mongo.dump"

	args := append(m.authArgs(),
		"--db="+m.creds.Database,
		"--out="+outDir,
		"--quiet",
	)

	cmd := exec.CommandContext(ctx, m.dumpBin, args...)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	m.logger.Info("dump started",
		zap.String("database", m.creds.Database),
		zap.String("out", outDir),
	)
	if err := cmd.Run(); err != nil {
		return errdefs.Newf(errdefs.KindDump, op, "%s failed: %v (stderr: %s)",
			m.dumpBin, err, strings.TrimSpace(stderr.String()))
	}

	if err := verifyNonEmptyDir(outDir); err != nil {
		return errdefs.New(errdefs.KindDump, op, err)
	}

	m.logger.Info("dump completed", zap.String("out", outDir))
	return nil
}

// Restore implements Restorer. When targetDB differs from the dumped
// database the namespaces are remapped into the target.
func (m *Mongo) Restore(ctx context.Context, sourceDir, targetDB string) error {
	const op = "mongo.restore"

	if _, err := os.Stat(sourceDir); err != nil {
		return errdefs.Newf(errdefs.KindRestore, op, "restore source %q not found: %v", sourceDir, err)
	}

	source := m.creds.Database
	if targetDB == "" {
		targetDB = source
	}

	args := append(m.authArgs(),
		"--dir="+sourceDir,
		"--drop",
		"--quiet",
	)
	if targetDB == source {
		args = append(args, "--nsInclude="+source+".*")
	} else {
		args = append(args,
			"--nsInclude="+source+".*",
			"--nsFrom="+source+".*",
			"--nsTo="+targetDB+".*",
		)
	}

	cmd := exec.CommandContext(ctx, m.restoreBin, args...)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	m.logger.Info("restore started",
		zap.String("source", sourceDir),
		zap.String("target", targetDB),
	)
	if err := cmd.Run(); err != nil {
		return errdefs.Newf(errdefs.KindRestore, op, "%s failed: %v (stderr: %s)",
			m.restoreBin, err, strings.TrimSpace(stderr.String()))
	}

	m.logger.Info("restore completed", zap.String("target", targetDB))
	return nil
}

// verifyNonEmptyDir checks that the dump produced at least one entry.
func verifyNonEmptyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dump directory %q: %w", dir, err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("dump directory %q is empty", dir)
	}
	return nil
}
