package export

import (
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/netbom/pkg/bom"
)

// Template markers replaced in htmlTemplate.
const (
	markerSource    = "<!--SOURCE-->"
	markerDate      = "<!--DATE-->"
	markerTool      = "<!--TOOL-->"
	markerCompCount = "<!--COMPCOUNT-->"
	markerTableRow  = "<!--TABLEROW-->"
)

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Bill of Materials</title>
</head>
<body>
<h1>` + markerSource + `</h1>
<p>` + markerDate + `</p>
<p>` + markerTool + `</p>
<p>` + markerCompCount + `</p>
<table border="1">
` + markerTableRow + `
</table>
</body>
</html>
`

// WriteHTML writes r as an HTML table in a fixed page template. Markers
// are replaced by literal substitution; each row is inserted ahead of the
// row marker, which is dropped at the end.
func WriteHTML(w io.Writer, r *bom.Report, _ Options) error {
	page := htmlTemplate
	page = strings.Replace(page, markerSource, html.EscapeString(r.Design.Source), 1)
	page = strings.Replace(page, markerDate, html.EscapeString(r.Design.Date), 1)
	page = strings.Replace(page, markerTool, html.EscapeString(r.Design.Tool), 1)
	page = strings.Replace(page, markerCompCount,
		"<b>Component Count:</b> "+strconv.Itoa(r.ComponentCount), 1)

	page = insertRow(page, htmlRow("th", r.Columns))
	for _, row := range r.Rows {
		page = insertRow(page, htmlRow("td", row))
	}
	page = strings.Replace(page, markerTableRow+"\n", "", 1)

	_, err := io.WriteString(w, page)
	return err
}

func insertRow(page, row string) string {
	return strings.Replace(page, markerTableRow, row+"\n"+markerTableRow, 1)
}

func htmlRow(cell string, values []string) string {
	var b strings.Builder
	b.WriteString("<tr>")
	for _, v := range values {
		b.WriteString("<" + cell + ">")
		b.WriteString(html.EscapeString(v))
		b.WriteString("</" + cell + ">")
	}
	b.WriteString("</tr>")
	return b.String()
}
