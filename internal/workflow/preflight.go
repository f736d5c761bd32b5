package workflow

import (
	"os"
	"os/exec"

	"golang.org/x/sys/unix"

	"mongo-backup/internal/errdefs"
)

// CheckTools verifies the required client binaries are on PATH.
func CheckTools(tools []string) error {
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err != nil {
			return errdefs.Newf(errdefs.KindPrerequisite, "preflight",
				"required tool %q not found in PATH", tool)
		}
	}
	return nil
}

// CheckDiskSpace verifies dir has at least minFree bytes available,
// creating dir if it does not exist yet. A minFree of zero disables the
// check.
func CheckDiskSpace(dir string, minFree int64) error {
	if minFree <= 0 {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errdefs.New(errdefs.KindPrerequisite, "preflight", err)
	}

	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return errdefs.Newf(errdefs.KindPrerequisite, "preflight",
			"statfs %s: %v", dir, err)
	}

	free := int64(st.Bavail) * st.Bsize
	if free < minFree {
		return errdefs.Newf(errdefs.KindPrerequisite, "preflight",
			"insufficient disk space in %s: %d bytes free, %d required", dir, free, minFree)
	}
	return nil
}
