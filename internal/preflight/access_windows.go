//go:build windows

package preflight

import (
	"os"
	"path/filepath"
)

func checkAccess(path string, write bool) error {
	if !write {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		return f.Close()
	}
	f, err := os.CreateTemp(path, ".tabbatch-access-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(filepath.Clean(name))
}
