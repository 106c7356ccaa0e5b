package render

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/unkn0wn-root/curlparse/internal/errdef"
)

// WriteFile writes content to dst through a temp file and rename. An
// existing dst is an error unless overwrite is set.
func WriteFile(ctx context.Context, content, dst string, overwrite bool) error {
	if strings.TrimSpace(dst) == "" {
		return errdef.New(errdef.CodeFilesystem, "destination path is empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "create directory")
	}

	if !overwrite {
		if _, err := os.Stat(dst); err == nil {
			return errdef.New(errdef.CodeFilesystem, "destination %s already exists", dst)
		}
	}

	tmp, err := os.CreateTemp(dir, "curlparse-*"+filepath.Ext(dst))
	if err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "create temp file")
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := io.WriteString(tmp, content); err != nil {
		_ = tmp.Close()
		return errdef.Wrap(errdef.CodeFilesystem, err, "write temp file")
	}
	if err := tmp.Close(); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "close temp file")
	}

	if err := os.Rename(tmpName, dst); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "rename temp file")
	}
	return nil
}
