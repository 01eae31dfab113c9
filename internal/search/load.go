package search

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"

	werrors "github.com/Aman-CERP/wicli/internal/errors"
)

// loadContent reads the whole file at path as UTF-8 text.
// maxSize > 0 rejects larger files before reading them.
func loadContent(path string, maxSize int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return "", readFailure(werrors.ErrCodeFilePermission, path, "permission denied", err)
		}
		return "", readFailure(werrors.ErrCodeFileRead, path, "unable to open file", err)
	}
	defer func() { _ = f.Close() }()

	if maxSize > 0 {
		info, err := f.Stat()
		if err != nil {
			return "", readFailure(werrors.ErrCodeFileRead, path, "unable to stat file", err)
		}
		if info.Size() > maxSize {
			return "", readFailure(werrors.ErrCodeFileTooLarge, path,
				fmt.Sprintf("file is %d bytes, limit is %d", info.Size(), maxSize), nil)
		}
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return "", readFailure(werrors.ErrCodeFileRead, path, "unable to read file", err)
	}
	if !utf8.Valid(data) {
		return "", readFailure(werrors.ErrCodeFileNotText, path, "file is not valid UTF-8 text", nil)
	}
	return string(data), nil
}

func readFailure(code, path, msg string, cause error) *werrors.WicliError {
	return werrors.New(code, msg, cause).WithDetail("path", path)
}
