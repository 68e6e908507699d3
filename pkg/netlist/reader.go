package netlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotNetlist is returned when the input is not a netlist export.
var ErrNotNetlist = errors.New("not a KiCad netlist export")

// Format selects a netlist encoding.
type Format string

const (
	FormatAuto Format = ""
	FormatSexp Format = "sexp"
	FormatXML  Format = "xml"
)

// ReadFile reads and parses a netlist file. The encoding is taken from
// the file extension (.xml) or sniffed from the content.
func ReadFile(filename string) (*Netlist, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	format := FormatAuto
	if strings.EqualFold(filepath.Ext(filename), ".xml") {
		format = FormatXML
	}

	nl, err := Read(file, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return nl, nil
}

// Read parses a netlist from r. FormatAuto sniffs the first non-blank
// byte: '<' selects XML, anything else the S-expression reader.
func Read(r io.Reader, format Format) (*Netlist, error) {
	switch format {
	case FormatSexp:
		return ReadSexp(r)
	case FormatXML:
		return ReadXML(r)
	case FormatAuto:
	default:
		return nil, fmt.Errorf("unknown netlist format %q", format)
	}

	br := bufio.NewReader(r)
	for {
		b, err := br.Peek(1)
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("%w: empty input", ErrNotNetlist)
			}
			return nil, err
		}
		if isLeadingJunk(b[0]) {
			br.ReadByte()
			continue
		}
		if b[0] == '<' {
			return ReadXML(br)
		}
		return ReadSexp(br)
	}
}

// isLeadingJunk matches whitespace and UTF-8 byte order mark bytes.
func isLeadingJunk(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', 0xEF, 0xBB, 0xBF:
		return true
	}
	return false
}
