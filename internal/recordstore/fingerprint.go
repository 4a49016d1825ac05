package recordstore

import (
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path/filepath"
)

// Fingerprint hashes the names, sizes and modification times of every record
// file under path. Any edit to the content changes the fingerprint.
func Fingerprint(path string) (string, error) {
	h := sha256.New()
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isRecordFile(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(h, "%s:%d:%d\n", filepath.ToSlash(rel), info.Size(), info.ModTime().UnixNano())
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("fingerprinting %s: %w", path, err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
