package safeio

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrPreconditionFailed indicates the target file changed between read and replace.
var ErrPreconditionFailed = errors.New("file changed since it was read")

// CleanUserPath cleans a user-provided path and rejects traversal attempts.
// Returns paths with forward slashes for cross-platform consistency.
func CleanUserPath(p string) (string, error) {
	c := filepath.Clean(p)
	if strings.Contains(c, "..") {
		return "", errors.New("path traversal detected")
	}
	// Normalize to forward slashes for cross-platform consistency
	return filepath.ToSlash(c), nil
}

// ReadFileContained reads a file only if it is contained within baseDir.
// This prevents path traversal attacks by ensuring the file path resolves
// to a location within the specified base directory.
// Returns an error if the file is outside baseDir or cannot be read.
func ReadFileContained(baseDir, filePath string) ([]byte, error) {
	baseDirAbs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, errors.New("failed to resolve base directory")
	}
	filePathAbs, err := filepath.Abs(filePath)
	if err != nil {
		return nil, errors.New("failed to resolve file path")
	}

	rel, err := filepath.Rel(baseDirAbs, filePathAbs)
	if err != nil {
		return nil, errors.New("failed to compute relative path")
	}

	// Reject if relative path escapes the base directory
	if strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		return nil, errors.New("file path is outside base directory")
	}

	// #nosec G304 -- filePathAbs has been verified to be contained within baseDirAbs
	return os.ReadFile(filePathAbs)
}

// ContentHash returns a hex SHA-256 digest used as a replace precondition.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Replacer atomically replaces a file's content. Abstracted so repair logic
// can be exercised in tests without touching a real filesystem.
type Replacer interface {
	// Replace writes data to path via a temporary file and rename. When
	// wantHash is non-empty the current on-disk content must still hash to
	// wantHash, otherwise ErrPreconditionFailed is returned and the file is
	// left untouched.
	Replace(path string, data []byte, wantHash string) error
}

// FileReplacer is the disk-backed Replacer.
type FileReplacer struct{}

func (FileReplacer) Replace(path string, data []byte, wantHash string) error {
	var mode os.FileMode = 0o644
	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if m := st.Mode() & 0o777; m != 0 {
		mode = m
	}

	if wantHash != "" {
		current, err := os.ReadFile(path) // #nosec G304 -- path supplied by validator over discovered assets
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if ContentHash(current) != wantHash {
			return fmt.Errorf("%s: %w", path, ErrPreconditionFailed)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, mode); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// WriteFilePreservePerms writes data to path preserving existing file mode when possible.
// When the file does not exist, it uses a sane default of 0644.
func WriteFilePreservePerms(path string, data []byte) error {
	var mode os.FileMode = 0o644
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode() & 0o777
		if mode == 0 {
			mode = 0o644
		}
	}
	return os.WriteFile(path, data, mode)
}
