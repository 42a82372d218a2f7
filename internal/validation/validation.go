// Package validation holds the input checks shared by the configuration,
// command and storage layers.
package validation

import (
	"fmt"
	"os"
	"strings"
)

// OutputFormats lists the summary formats the report layer can render.
var OutputFormats = []string{"text", "json", "yaml"}

// IsValidLedgerPath checks that path can hold the ledger file. The file and its
// parent directory may not exist yet, but an existing path must be a regular file.
func IsValidLedgerPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("ledger path must not be empty")
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("ledger path %s is a directory", path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("ledger path %s is not a regular file", path)
	}

	return nil
}

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	for _, f := range OutputFormats {
		if strings.EqualFold(format, f) {
			return nil
		}
	}
	return fmt.Errorf("unsupported output format: %s. Supported formats are %s", format, strings.Join(OutputFormats, ", "))
}

// IsValidFilePermissions checks that a file holding personal spending data
// grants nothing to other users.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode.Perm()&0007 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600", mode.Perm().String())
	}
	return nil
}
