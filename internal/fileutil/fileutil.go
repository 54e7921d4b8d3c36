// Package fileutil writes command output files atomically.
package fileutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/mpexport/core/errors"
)

// IsXZPath reports whether path names an xz-compressed file.
func IsXZPath(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".xz"
}

// WriteFile writes data to path through a temp file in the same directory,
// renamed into place once fully written.
func WriteFile(path string, data []byte) error {
	return writeAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WriteFileXZ writes data to path like WriteFile, xz-compressed.
func WriteFileXZ(path string, data []byte) error {
	return writeAtomic(path, func(w io.Writer) error {
		xw, err := xz.NewWriter(w)
		if err != nil {
			return err
		}
		if _, err := xw.Write(data); err != nil {
			return err
		}
		return xw.Close()
	})
}

func writeAtomic(path string, fill func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewIO("write", path, err)
	}
	tempFile, err := os.CreateTemp(dir, ".mpexport-*")
	if err != nil {
		return errors.NewIO("write", path, err)
	}
	tempPath := tempFile.Name()

	if err := fill(tempFile); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return errors.NewIO("write", path, err)
	}
	if err := tempFile.Chmod(0o644); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return errors.NewIO("write", path, err)
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return errors.NewIO("write", path, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.NewIO("write", path, err)
	}
	return nil
}
