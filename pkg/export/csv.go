package export

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/netbom/pkg/bom"
)

// headerRows returns the leading key/value rows shared by CSV and TSV.
func headerRows(r *bom.Report) [][]string {
	return [][]string{
		{"Source:", r.Design.Source},
		{"Date:", r.Design.Date},
		{"Tool:", r.Design.Tool},
		{"Component Count:", strconv.Itoa(r.ComponentCount)},
	}
}

// WriteCSV writes r as comma-separated values with every field quoted.
func WriteCSV(w io.Writer, r *bom.Report, _ Options) error {
	bw := bufio.NewWriter(w)
	for _, row := range headerRows(r) {
		writeDelimited(bw, row, ',', quoteField)
	}
	writeDelimited(bw, r.Columns, ',', quoteField)
	for _, row := range r.Rows {
		writeDelimited(bw, row, ',', quoteField)
	}
	return bw.Flush()
}

// WriteTSV writes r as tab-separated values. Tabs and line breaks inside
// values are replaced with spaces; fields are quoted when opts.Quote is set.
func WriteTSV(w io.Writer, r *bom.Report, opts Options) error {
	field := func(s string) string {
		s = tsvReplacer.Replace(s)
		if opts.Quote {
			return quoteField(s)
		}
		return s
	}

	bw := bufio.NewWriter(w)
	for _, row := range headerRows(r) {
		writeDelimited(bw, row, '\t', field)
	}
	writeDelimited(bw, r.Columns, '\t', field)
	for _, row := range r.Rows {
		writeDelimited(bw, row, '\t', field)
	}
	return bw.Flush()
}

var tsvReplacer = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// writeDelimited writes one record. Errors are sticky in bw and surface
// at Flush.
func writeDelimited(bw *bufio.Writer, fields []string, sep byte, field func(string) string) {
	for i, f := range fields {
		if i > 0 {
			bw.WriteByte(sep)
		}
		bw.WriteString(field(f))
	}
	bw.WriteByte('\n')
}
