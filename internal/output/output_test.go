package output

import (
	"bytes"
	stderrors "errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"brb/internal/dataset"
	"brb/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sample(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(
		dataset.Column{Name: "DEPT", Values: []float64{1670, 1669.875}},
		[]dataset.Column{
			{Name: "GR", Values: []float64{45.1, 47.3}},
			{Name: "RMS", Values: []float64{2.1, math.NaN()}},
		},
	)
	require.NoError(t, err)
	return ds
}

func TestCSVEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSVEncoder{}.Encode(&buf, sample(t)))

	expected := "DEPT,GR,RMS\n1670.0,45.1,2.1\n1669.875,47.3,\n"
	assert.Equal(t, expected, buf.String())
}

func TestCSVEncoderIndexOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSVEncoder{}.Encode(&buf, sample(t).Select(nil)))

	assert.Equal(t, "DEPT\n1670.0\n1669.875\n", buf.String())
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1670, "1670.0"},
		{-3, "-3.0"},
		{0, "0.0"},
		{0.25, "0.25"},
		{-999.25, "-999.25"},
		{1e-7, "1e-07"},
		{1e21, "1e+21"},
		{math.Inf(1), "+Inf"},
		{math.NaN(), ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in))
	}
}

func TestXLSXEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSXEncoder{SheetName: "15!9-F-1"}.Encode(&buf, sample(t)))

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	assert.Equal(t, []string{"15!9-F-1"}, book.GetSheetList())
	rows, err := book.GetRows("15!9-F-1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"DEPT", "GR", "RMS"}, rows[0])
	assert.Equal(t, "1670", rows[1][0])
	assert.Len(t, rows[2], 2, "trailing missing cell is empty")
}

func TestXLSXEncoderSheetNames(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		want       string
	}{
		{"default sheet kept", "Sheet1", "Sheet1"},
		{"reserved characters", "15/9-F-1 C:[x]", "15_9-F-1 C__x_"},
		{"empty identifier", "", "Sheet1"},
		{"long identifier", "0123456789012345678901234567890123456789", "0123456789012345678901234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, XLSXEncoder{SheetName: tt.identifier}.Encode(&buf, sample(t)))

			book, err := excelize.OpenReader(&buf)
			require.NoError(t, err)
			defer book.Close()

			assert.Equal(t, []string{tt.want}, book.GetSheetList())
			rows, err := book.GetRows(tt.want)
			require.NoError(t, err)
			assert.Len(t, rows, 3)
		})
	}
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Sheet1", sheetName(""))
	assert.Equal(t, "a_b_c", sheetName("a:b/c"))
	assert.Len(t, []rune(sheetName("0123456789012345678901234567890123456789")), maxSheetNameLen)
}

func TestEncoderFor(t *testing.T) {
	enc, err := EncoderFor("", "w")
	require.NoError(t, err)
	assert.IsType(t, CSVEncoder{}, enc)

	enc, err = EncoderFor(FormatXLSX, "w")
	require.NoError(t, err)
	assert.Equal(t, XLSXEncoder{SheetName: "w"}, enc)

	_, err = EncoderFor("parquet", "w")
	assert.ErrorIs(t, err, errors.ErrConfig)
}

func TestPathFor(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "15!9-F-1.csv"), PathFor("out", "15!9-F-1", ""))
	assert.Equal(t, filepath.Join("out", "w.xlsx"), PathFor("out", "w", FormatXLSX))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "well.csv")

	rows, err := WriteFile(path, sample(t), CSVEncoder{})
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "DEPT,GR,RMS")
}

func TestWriteFileNeverOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "well.csv")
	require.NoError(t, os.WriteFile(path, []byte("keep me"), 0o644))
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, old, old))

	assert.ErrorIs(t, CheckAvailable(path), errors.ErrOutputExists)

	_, err := WriteFile(path, sample(t), CSVEncoder{})
	require.Error(t, err)
	var exists *errors.OutputExistsError
	assert.True(t, stderrors.As(err, &exists))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(content))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old), "modification time changed")
}

type failingEncoder struct{}

func (failingEncoder) Encode(w io.Writer, _ *dataset.Dataset) error {
	_, _ = w.Write([]byte("DEPT,"))
	return stderrors.New("disk full")
}

func TestWriteFileRemovesPartialOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "well.csv")

	_, err := WriteFile(path, sample(t), failingEncoder{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrOutput)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "partial output left on disk")
}

func TestWriteFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "well.csv")

	_, err := WriteFile(path, sample(t), CSVEncoder{})
	assert.ErrorIs(t, err, errors.ErrOutput)
	assert.NoError(t, CheckAvailable(path))
}
