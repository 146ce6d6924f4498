package core

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// spreadsheetText renders the first sheet of an .xlsx workbook as CSV text the
// tokenizer splits back into the same cells.
//
// excelize drops trailing empty cells, so rows are padded to the header width.
func spreadsheetText(raw []byte) (string, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return "", nil
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}

	var b strings.Builder
	for _, row := range rows {
		n := len(row)
		if n > 0 && n < width {
			n = width
		}
		for j := 0; j < n; j++ {
			if j > 0 {
				b.WriteByte(',')
			}
			if j < len(row) {
				b.WriteString(spreadsheetCell(row[j]))
			}
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// spreadsheetCell flattens a cell onto one line and quotes it when it holds a comma.
func spreadsheetCell(v string) string {
	v = strings.ReplaceAll(v, `"`, "")
	v = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(v)
	if strings.Contains(v, ",") {
		return `"` + v + `"`
	}
	return v
}
