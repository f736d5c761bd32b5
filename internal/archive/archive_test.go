package archive

import (
	"archive/tar"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "appdb", "users.bson"), "bson-bytes")
	writeFile(t, filepath.Join(src, "appdb", "users.metadata.json"), `{"indexes":[]}`)
	writeFile(t, filepath.Join(src, "appdb", "orders.bson"), "more-bson")

	archivePath := filepath.Join(t.TempDir(), "backup.tar.gz")
	size, err := Pack(src, archivePath)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if size <= 0 {
		t.Errorf("expected a positive archive size, got %d", size)
	}

	dst := t.TempDir()
	if err := Unpack(archivePath, dst); err != nil {
		t.Fatalf("Unpack: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dst, "appdb", "users.bson"))
	if err != nil {
		t.Fatalf("read extracted file: %v", err)
	}
	if string(got) != "bson-bytes" {
		t.Errorf("extracted content = %q, want %q", got, "bson-bytes")
	}

	entries, err := os.ReadDir(filepath.Join(dst, "appdb"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 extracted entries, got %d", len(entries))
	}
}

func TestValidate(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "dump.bson"), "x")

	archivePath := filepath.Join(t.TempDir(), "ok.tar.gz")
	if _, err := Pack(src, archivePath); err != nil {
		t.Fatal(err)
	}
	if err := Validate(archivePath); err != nil {
		t.Errorf("Validate on a good archive: %v", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.tar.gz")
	if err := os.WriteFile(path, []byte("this is not gzip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Validate(path); err == nil {
		t.Error("expected an error for non-gzip input")
	}
}

func TestValidateRejectsEmptyArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.tar.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	err = Validate(path)
	if err == nil {
		t.Fatal("expected an error for an empty archive")
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestUnpackRejectsPathTraversal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evil.tar.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)
	if err := tw.WriteHeader(&tar.Header{
		Name:     "../../escape.txt",
		Typeflag: tar.TypeReg,
		Mode:     0o644,
		Size:     4,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write([]byte("evil")); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	err = Unpack(path, t.TempDir())
	if err == nil {
		t.Fatal("expected an error for a path traversal entry")
	}
	if !strings.Contains(err.Error(), "escapes") {
		t.Errorf("unexpected error: %v", err)
	}
}
