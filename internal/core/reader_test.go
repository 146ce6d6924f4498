package core

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func namedFile(name string, data []byte) File {
	return NamedReader{Reader: bytes.NewReader(data), FileName: name}
}

// failingReader returns err on every read.
type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }
func (f failingReader) Name() string             { return "broken.csv" }

func TestReadFileAsText_PlainCSV(t *testing.T) {
	text, err := ReadFileAsText(namedFile("enrolment.csv", []byte("District,Total\nBokaro,1\n")), ReadOptions{})

	require.NoError(t, err)
	assert.Equal(t, "District,Total\nBokaro,1\n", text)
}

func TestReadFileAsText_OSFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "density.csv")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFDistrict,Population\nBokaro,5\n"), 0o600))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	text, err := ReadFileAsText(f, ReadOptions{})

	require.NoError(t, err)
	assert.Equal(t, "District,Population\nBokaro,5\n", text)
}

func TestReadFileAsText_Encoding(t *testing.T) {
	text, err := ReadFileAsText(namedFile("d.csv", []byte("District\nPal\xe9")), ReadOptions{Encoding: "windows-1252"})

	require.NoError(t, err)
	assert.Equal(t, "District\nPalé", text)
}

func TestReadFileAsText_Failures(t *testing.T) {
	readErr := errors.New("disk on fire")

	tests := []struct {
		name    string
		file    File
		opts    ReadOptions
		wantErr error
	}{
		{"nil file", nil, ReadOptions{}, ErrNoFile},
		{"unsupported encoding", namedFile("a.csv", []byte("x")), ReadOptions{Encoding: "klingon"}, ErrUnsupportedEncoding},
		{"too large", namedFile("a.csv", []byte("0123456789")), ReadOptions{MaxBytes: 9}, ErrFileTooLarge},
		{"reader error", failingReader{err: readErr}, ReadOptions{}, readErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ReadFileAsText(tt.file, tt.opts)

			assert.Empty(t, text)
			require.Error(t, err)
			assert.EqualError(t, err, "Failed to read file")
			assert.ErrorIs(t, err, tt.wantErr)

			var re *ReadError
			require.ErrorAs(t, err, &re)
		})
	}
}

func TestReadFileAsText_ExactlyMaxBytes(t *testing.T) {
	text, err := ReadFileAsText(namedFile("a.csv", []byte("0123456789")), ReadOptions{MaxBytes: 10})

	require.NoError(t, err)
	assert.Equal(t, "0123456789", text)
}

func TestReadFileAsText_ReadErrorCarriesName(t *testing.T) {
	_, err := ReadFileAsText(namedFile("big.csv", []byte("0123")), ReadOptions{MaxBytes: 1})

	var re *ReadError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "big.csv", re.Name)
}

func TestReadFileAsText_Spreadsheet(t *testing.T) {
	wb := excelize.NewFile()
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	require.NoError(t, wb.SetSheetRow(sheet, "A1", &[]any{"District", "Population", "Area_SqKm"}))
	require.NoError(t, wb.SetSheetRow(sheet, "A2", &[]any{"Bokaro, East", 2062330, 2883.5}))
	require.NoError(t, wb.SetSheetRow(sheet, "A3", &[]any{"Ranchi", 2914253}))

	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)

	text, err := ReadFileAsText(namedFile("density.XLSX", buf.Bytes()), ReadOptions{})
	require.NoError(t, err)

	got := ParseCSV(text, []string{"District", "Population", "Area_SqKm"})
	require.True(t, got.Success, "errors: %v", got.Errors)
	require.Len(t, got.Data, 2)
	assert.Equal(t, Record{"District": "Bokaro, East", "Population": float64(2062330), "Area_SqKm": 2883.5}, got.Data[0])
	assert.Equal(t, "", got.Data[1]["Area_SqKm"])
}

func TestReadFileAsText_CorruptSpreadsheet(t *testing.T) {
	_, err := ReadFileAsText(namedFile("broken.xlsx", []byte("not a zip")), ReadOptions{})

	require.Error(t, err)
	assert.EqualError(t, err, "Failed to read file")
	assert.Contains(t, errors.Unwrap(err).Error(), "open workbook")
}

func TestReadFileAsync(t *testing.T) {
	ch := ReadFileAsync(namedFile("a.csv", []byte("A,B\n1,2")), ReadOptions{})

	select {
	case out, ok := <-ch:
		require.True(t, ok)
		require.NoError(t, out.Err)
		assert.Equal(t, "A,B\n1,2", out.Text)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for read")
	}

	_, ok := <-ch
	assert.False(t, ok, "channel should be closed after one outcome")
}

func TestReadFileAsync_Error(t *testing.T) {
	out := <-ReadFileAsync(nil, ReadOptions{})

	assert.Empty(t, out.Text)
	assert.ErrorIs(t, out.Err, ErrNoFile)
}

func TestIsSpreadsheet(t *testing.T) {
	assert.True(t, IsSpreadsheet("a.xlsx"))
	assert.True(t, IsSpreadsheet("A.XLSX"))
	assert.False(t, IsSpreadsheet("a.csv"))
	assert.False(t, IsSpreadsheet("xlsx"))
}
