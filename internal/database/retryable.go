package database

import (
	"errors"
	"os/exec"
	"strings"
)

// retryablePatterns are transient connection failures worth another dump
// attempt. Authentication rejections are deliberately absent: retrying a
// bad password never helps.
var retryablePatterns = []string{
	"connection refused",
	"no reachable servers",
	"server selection error",
	"no such host",
	"timeout",
	"i/o timeout",
	"connection reset",
	"socket was unexpectedly closed",
}

// IsRetryable reports whether err looks like a transient failure of one of
// the database tools.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		msg += " " + strings.ToLower(string(exitErr.Stderr))
	}

	for _, p := range retryablePatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
