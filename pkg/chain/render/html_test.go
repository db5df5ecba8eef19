package render

import (
	"strings"
	"testing"
)

func TestWriteHTMLTable(t *testing.T) {
	report := testReport()
	plan := BuildPlan(report, DefaultPalette(), 4)

	var b strings.Builder
	if err := WriteHTMLTable(&b, report, plan, 0); err != nil {
		t.Fatalf("WriteHTMLTable failed: %v", err)
	}
	out := b.String()

	if got := strings.Count(out, "<tr>"); got != 1+len(report.Rows) {
		t.Errorf("rendered %d rows, want %d", got, 1+len(report.Rows))
	}
	if !strings.Contains(out, "background-color:#"+DefaultPalette().HeaderFill.Hex()) {
		t.Error("header fill missing from output")
	}
	if !strings.Contains(out, "background-color:#"+DefaultPalette().CallHighlight.Hex()) {
		t.Error("call-side highlight missing from output")
	}
	if strings.Contains(out, "not shown") {
		t.Error("unlimited preview should not be truncated")
	}
}

func TestWriteHTMLTableRowLimit(t *testing.T) {
	report := testReport()
	plan := BuildPlan(report, DefaultPalette(), 4)

	var b strings.Builder
	if err := WriteHTMLTable(&b, report, plan, 2); err != nil {
		t.Fatalf("WriteHTMLTable failed: %v", err)
	}
	out := b.String()

	if got := strings.Count(out, "<tr>"); got != 3 {
		t.Errorf("rendered %d rows, want 3 (header + 2 data)", got)
	}
	if !strings.Contains(out, "3 more rows not shown") {
		t.Error("truncation notice missing")
	}
}
