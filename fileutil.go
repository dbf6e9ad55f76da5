package gdl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ensureDir creates dir and any missing parents. An empty dir means the
// current directory and is a no-op.
func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// fileExists reports whether name exists on the local filesystem.
func fileExists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

// uniqueName returns name, or name with a _2, _3, ... suffix before the
// extension when name was already handed out. seen is updated.
func uniqueName(seen map[string]bool, name string) string {
	if !seen[name] {
		seen[name] = true
		return name
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if !seen[candidate] {
			seen[candidate] = true
			return candidate
		}
	}
}
