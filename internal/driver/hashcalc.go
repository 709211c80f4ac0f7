package driver

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Digest is the SHA-256 of a generated artifact.
type Digest [sha256.Size]byte

func digestOf(data []byte) Digest {
	return sha256.Sum256(data)
}

// fileDigest hashes the file at path. A missing file reports ok == false.
func fileDigest(path string) (d Digest, ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return d, false, nil
	}
	if err != nil {
		return d, false, err
	}
	return digestOf(data), true, nil
}

// writeIfChanged writes data to path unless the file already holds exactly
// data, so unchanged artifacts keep their modification time. It reports
// whether the file was written.
func writeIfChanged(path string, data []byte) (bool, error) {
	old, ok, err := fileDigest(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if ok && old == digestOf(data) {
		return false, nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
