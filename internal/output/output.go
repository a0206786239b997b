// Package output writes a dataset to a file that must not exist yet.
// The file is created exclusively, so an existing file is never truncated,
// and a file left half written by a failed serialization is removed.
package output

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"brb/internal/dataset"
	"brb/internal/errors"
)

// Supported output formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Encoder serializes a dataset, index column first, to w.
type Encoder interface {
	Encode(w io.Writer, ds *dataset.Dataset) error
}

// EncoderFor returns the encoder for format. identifier names the XLSX sheet.
func EncoderFor(format, identifier string) (Encoder, error) {
	switch format {
	case "", FormatCSV:
		return CSVEncoder{}, nil
	case FormatXLSX:
		return XLSXEncoder{SheetName: identifier}, nil
	default:
		return nil, errors.NewConfigError(fmt.Sprintf("unsupported output format %q", format), nil)
	}
}

// PathFor returns <dir>/<identifier>.<format>.
func PathFor(dir, identifier, format string) string {
	if format == "" {
		format = FormatCSV
	}
	return filepath.Join(dir, identifier+"."+format)
}

// CheckAvailable fails with OutputExists when something is already at path.
func CheckAvailable(path string) error {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return errors.NewOutputExistsError(path)
	case stderrors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return errors.NewOutputError(path, "cannot check output path", err)
	}
}

// WriteFile creates path exclusively and encodes ds into it. It returns the
// number of data rows written.
func WriteFile(path string, ds *dataset.Dataset, enc Encoder) (int, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if stderrors.Is(err, fs.ErrExist) {
			return 0, errors.NewOutputExistsError(path)
		}
		return 0, errors.NewOutputError(path, "failed to create output file", err)
	}

	if err := enc.Encode(file, ds); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return 0, errors.NewOutputError(path, "failed to write output", err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return 0, errors.NewOutputError(path, "failed to close output file", err)
	}

	return ds.Len(), nil
}
