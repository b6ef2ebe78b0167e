package organize

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// renameFile is swapped out in tests to exercise the cross-volume
// fallback, which os.Rename only takes on a real device boundary.
var renameFile = os.Rename

// Move relocates src into dstDir, creating the directory as needed,
// and returns the destination path. It tries an atomic rename first
// (cheap on the same volume) and falls back to copy-then-delete when
// the rename fails, typically across filesystems.
//
// If the fallback copies successfully but cannot remove the source,
// the copy stays in place and the error reports the duplicate.
func Move(src, dstDir string) (string, error) {
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create destination %s: %w", dstDir, err)
	}

	dst := filepath.Join(dstDir, filepath.Base(src))

	if err := renameFile(src, dst); err == nil {
		return dst, nil
	}

	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}

	if err := os.Remove(src); err != nil {
		return dst, fmt.Errorf("copied to %s but could not remove source %s: %w", dst, src, err)
	}

	return dst, nil
}

// copyFile copies bytes and permissions from src to dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst) // don't leave a partial copy behind
		return err
	}

	return out.Close()
}
