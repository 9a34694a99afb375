// Package validation handles validation of user flag input.
package validation

import (
	"fmt"
	"os"
)

// ValidateDirectory validates that the directory exists, else creates it if
// desired.
func ValidateDirectory(dir string, createIfNotFound bool) (os.FileInfo, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat directory %q: %w", dir, err)
		}
		if !createIfNotFound {
			return nil, fmt.Errorf("directory %q does not exist", dir)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
		return os.Stat(dir)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path %q exists but is not a directory", dir)
	}
	return info, nil
}

// ValidateFile validates that the file exists and is not a directory.
func ValidateFile(f string) (os.FileInfo, error) {
	info, err := os.Stat(f)
	if err != nil {
		return nil, fmt.Errorf("failed check for file path %q: %w", f, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path %q is a directory, should be a file", f)
	}
	return info, nil
}
