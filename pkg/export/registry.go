// Package export renders bill-of-materials reports and flat netlist
// dialects.
package export

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/OpenTraceLab/netbom/pkg/bom"
	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

// Format names.
const (
	FormatCSV  = "csv"
	FormatTSV  = "tsv"
	FormatHTML = "html"

	DialectCadstar   = "cadstar"
	DialectPADS      = "pads"
	DialectOrcadPcb2 = "orcadpcb2"
)

// ErrUnknownFormat is returned by Lookup for unregistered format names.
var ErrUnknownFormat = errors.New("unknown format")

// Options tunes report writers.
type Options struct {
	// Quote double-quotes every TSV field.
	Quote bool
}

// ReportFunc writes a bill of materials.
type ReportFunc func(w io.Writer, r *bom.Report, opts Options) error

// NetlistFunc writes a flat netlist of comps and the nets of src.
type NetlistFunc func(w io.Writer, src netlist.Source, comps []*netlist.Component) error

// Writer is a registered output format. Exactly one of Report and
// Netlist is set.
type Writer struct {
	Name      string
	Extension string
	Report    ReportFunc
	Netlist   NetlistFunc
}

var registry = map[string]Writer{}

// Register adds a writer, replacing any previous one with the same name.
func Register(w Writer) {
	registry[w.Name] = w
}

func init() {
	Register(Writer{Name: FormatCSV, Extension: ".csv", Report: WriteCSV})
	Register(Writer{Name: FormatTSV, Extension: ".tsv", Report: WriteTSV})
	Register(Writer{Name: FormatHTML, Extension: ".html", Report: WriteHTML})
	Register(Writer{Name: DialectCadstar, Extension: ".frp", Netlist: WriteCadstar})
	Register(Writer{Name: DialectPADS, Extension: ".asc", Netlist: WritePADS})
	Register(Writer{Name: DialectOrcadPcb2, Extension: ".net", Netlist: WriteOrcadPcb2})
}

// Lookup returns the writer registered under name (case-insensitive).
func Lookup(name string) (Writer, error) {
	w, ok := registry[strings.ToLower(name)]
	if !ok {
		return Writer{}, fmt.Errorf("%w %q (known: %s)", ErrUnknownFormat, name, strings.Join(Formats(), ", "))
	}
	return w, nil
}

// Formats returns the registered format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReportFormatForPath picks a report format from the output file
// extension, defaulting to CSV.
func ReportFormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".txt", ".tab":
		return FormatTSV
	case ".html", ".htm":
		return FormatHTML
	}
	return FormatCSV
}
