package render

import (
	"html/template"
	"io"

	"chainfmt/pkg/chain/models"
)

// htmlCell is one rendered preview cell.
type htmlCell struct {
	Text  string
	Style template.CSS
}

type htmlTable struct {
	HeaderStyle template.CSS
	Columns     []string
	Rows        [][]htmlCell
	Truncated   int // data rows hidden by the row limit, 0 when showing all
}

var tableTemplate = template.Must(template.New("table").Parse(`<table class="chain" style="border-collapse:collapse">
<thead><tr>
{{- range .Columns}}<th style="{{$.HeaderStyle}}">{{.}}</th>{{end -}}
</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td style="{{.Style}}">{{.Text}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
{{- if .Truncated}}
<p class="truncated">{{.Truncated}} more rows not shown.</p>
{{- end}}
`))

// WriteHTMLTable renders the report as a styled table for the browser
// preview. The cell backgrounds come from the same Plan the workbook writer
// uses, so both surfaces colour identically. rowLimit caps the data rows
// shown; 0 means all rows. The limit is a parameter of this call, not
// ambient display state.
func WriteHTMLTable(w io.Writer, report models.Report, plan Plan, rowLimit int) error {
	shown := len(report.Rows)
	if rowLimit > 0 && rowLimit < shown {
		shown = rowLimit
	}

	t := htmlTable{
		HeaderStyle: cellCSS(&plan.Palette.HeaderFill, &plan.Palette.HeaderFont, "center", true),
		Columns:     models.ColumnNames[:],
		Truncated:   len(report.Rows) - shown,
	}

	for rowIdx := 0; rowIdx < shown; rowIdx++ {
		row := report.Rows[rowIdx]
		cells := make([]htmlCell, models.ColumnCount)
		for col := 0; col < models.ColumnCount; col++ {
			var text string
			if col == models.ColTime {
				text = row.Time
			} else {
				text = FormatCell(row.Numeric(col))
			}
			fill, font := cellOverrides(plan, row, rowIdx, col)
			cells[col] = htmlCell{Text: text, Style: cellCSS(fill, font, "right", false)}
		}
		t.Rows = append(t.Rows, cells)
	}

	return tableTemplate.Execute(w, t)
}

func cellCSS(fill, font *RGB, align string, bold bool) template.CSS {
	css := "border:1px solid #000;padding:2px 6px;text-align:" + align
	if fill != nil {
		css += ";background-color:#" + fill.Hex()
	}
	if font != nil {
		css += ";color:#" + font.Hex()
	}
	if bold {
		css += ";font-weight:bold"
	}
	return template.CSS(css)
}
