package core

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// ErrFileTooLarge is the cause of a ReadError when a file exceeds ReadOptions.MaxBytes.
var ErrFileTooLarge = errors.New("file too large")

// ErrNoFile is the cause of a ReadError when no file handle was given.
var ErrNoFile = errors.New("no file provided")

// readFailedMessage is the only message a failed read ever shows.
const readFailedMessage = "Failed to read file"

// File is an uploaded file handle. *os.File satisfies it.
type File interface {
	io.Reader
	Name() string
}

// ReadOptions controls how a file is turned into text.
type ReadOptions struct {
	Encoding string // Encoding name for LookupEncoding; empty means UTF-8
	MaxBytes int64  // Maximum raw size in bytes; 0 means unlimited
}

// ReadError reports a failed read. Error always returns "Failed to read file";
// the cause is available through errors.Is and errors.As.
type ReadError struct {
	Name string // File name, empty if unknown
	Err  error  // Underlying cause
}

func (e *ReadError) Error() string {
	return readFailedMessage
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// ReadFileAsText reads the whole file and returns its decoded text.
// Spreadsheets (.xlsx) are converted to comma-separated text from their first sheet.
// It blocks until the read completes; there is no cancellation or timeout.
func ReadFileAsText(f File, opts ReadOptions) (string, error) {
	if f == nil {
		return "", &ReadError{Err: ErrNoFile}
	}
	name := f.Name()

	enc, err := LookupEncoding(opts.Encoding)
	if err != nil {
		return "", &ReadError{Name: name, Err: err}
	}

	var r io.Reader = f
	if opts.MaxBytes > 0 {
		r = io.LimitReader(f, opts.MaxBytes+1)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return "", &ReadError{Name: name, Err: err}
	}
	if opts.MaxBytes > 0 && int64(len(raw)) > opts.MaxBytes {
		return "", &ReadError{Name: name, Err: ErrFileTooLarge}
	}

	if IsSpreadsheet(name) {
		text, err := spreadsheetText(raw)
		if err != nil {
			return "", &ReadError{Name: name, Err: err}
		}
		return text, nil
	}

	text, err := io.ReadAll(NewTextReader(bytes.NewReader(raw), enc))
	if err != nil {
		return "", &ReadError{Name: name, Err: err}
	}
	return string(text), nil
}

// ReadOutcome is the single value delivered by ReadFileAsync.
type ReadOutcome struct {
	Text string
	Err  error
}

// ReadFileAsync runs ReadFileAsText on its own goroutine. The returned channel
// receives exactly one outcome and is then closed. Callers that lose interest
// can simply stop listening; the buffered send never blocks.
func ReadFileAsync(f File, opts ReadOptions) <-chan ReadOutcome {
	ch := make(chan ReadOutcome, 1)
	go func() {
		defer close(ch)
		text, err := ReadFileAsText(f, opts)
		ch <- ReadOutcome{Text: text, Err: err}
	}()
	return ch
}

// IsSpreadsheet reports whether a file name has an .xlsx extension.
func IsSpreadsheet(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xlsx")
}

// NamedReader adapts any reader, such as a multipart part, to File.
type NamedReader struct {
	io.Reader
	FileName string
}

// Name returns the file name given at construction.
func (n NamedReader) Name() string {
	return n.FileName
}
