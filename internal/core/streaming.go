package core

// streaming.go wraps raw upload bytes in a decoding reader.
//
// Files exported from Excel on Windows are often Windows-1252 and may start with
// a byte order mark. The reader returned by NewTextReader:
//
//   - strips a UTF-8 or UTF-16 BOM and decodes UTF-16 when one is present
//   - otherwise decodes with the requested encoding
//   - replaces invalid UTF-8 with U+FFFD when the encoding is UTF-8

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnsupportedEncoding is returned for encoding names not in the table below.
var ErrUnsupportedEncoding = errors.New("unsupported encoding")

// DefaultEncoding is used when no encoding is requested.
const DefaultEncoding = "utf-8"

var encodings = map[string]encoding.Encoding{
	"utf-8":        unicode.UTF8,
	"utf8":         unicode.UTF8,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
}

// LookupEncoding resolves a case-insensitive encoding name. Empty means UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultEncoding
	}
	enc, ok := encodings[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, name)
	}
	return enc, nil
}

// SupportedEncodings lists the accepted encoding names, sorted.
func SupportedEncodings() []string {
	names := make([]string, 0, len(encodings))
	for name := range encodings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewTextReader returns a reader producing UTF-8 text from r.
// A leading BOM overrides enc.
func NewTextReader(r io.Reader, enc encoding.Encoding) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder()))
}
