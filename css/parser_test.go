package css_test

import (
	"math"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"ksefpdf/css"
	"ksefpdf/layout"
)

func TestParser_ClassSelectors(t *testing.T) {
	p := css.NewParser(zaptest.NewLogger(t))

	sheet := p.Parse([]byte(`
.title, .subtitle { font-size: 14pt; font-weight: bold }
.small { font-size: 6.5pt }
`), "inline")

	if len(sheet.Rules) != 3 {
		t.Fatalf("expected 3 rules, got %d: %s", len(sheet.Rules), sheet)
	}
	if len(sheet.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", sheet.Warnings)
	}

	sub := sheet.RulesBySelector(".subtitle")
	if len(sub) != 1 {
		t.Fatalf("expected .subtitle rule")
	}
	fs, ok := sub[0].Properties["font-size"]
	if !ok || fs.Value != 14 || fs.Unit != "pt" {
		t.Errorf("font-size = %+v", fs)
	}
	if fw := sub[0].Properties["font-weight"]; fw.Keyword != "bold" {
		t.Errorf("font-weight = %+v", fw)
	}
}

func TestParser_UnsupportedConstructs(t *testing.T) {
	p := css.NewParser(nil)

	sheet := p.Parse([]byte(`
@import "other.css";
@media print { .title { font-size: 20pt } }
p.title { color: red }
.heading > .label { font-style: italic }
.label { font-style: italic }
`))

	if len(sheet.Rules) != 1 || sheet.Rules[0].Selector != ".label" {
		t.Fatalf("expected single .label rule, got:\n%s", sheet)
	}
	if len(sheet.Warnings) != 4 {
		t.Errorf("expected 4 warnings, got %d: %v", len(sheet.Warnings), sheet.Warnings)
	}
}

func TestValue_Points(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"points", "10pt", 10, false},
		{"pixels", "16px", 12, false},
		{"inches", "1in", 72, false},
		{"millimeters", "25.4mm", 72, false},
		{"em", "1.5em", 12, false},
		{"percent", "50%", 4, false},
		{"unitless", "9", 9, false},
		{"keyword", "large", 0, true},
		{"unknown unit", "3vw", 0, true},
	}

	p := css.NewParser(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := p.Parse([]byte(".x { font-size: " + tt.input + " }"))
			if len(sheet.Rules) != 1 {
				t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
			}
			got, err := sheet.Rules[0].Properties["font-size"].Points(8)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Points() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Points() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStylesheet_Apply(t *testing.T) {
	p := css.NewParser(nil)
	sheet := p.Parse([]byte(`
.heading { font-size: 1.5em; margin-top: 4mm; margin-bottom: 2mm; font-weight: 700 }
body { font-size: 10pt; line-height: 1.4; font-family: "DejaVu Sans", sans-serif }
.label { font-style: italic }
`))

	dst := layout.StyleSheet{
		Font:     "Go",
		BaseSize: 8,
		Classes: map[layout.Class]layout.Style{
			layout.ClassLabel: {Bold: true},
		},
	}
	if err := sheet.Apply(&dst); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if dst.BaseSize != 10 || dst.LineHeight != 1.4 || dst.Font != "DejaVu Sans" {
		t.Errorf("body not applied: %+v", dst)
	}
	h := dst.Classes[layout.ClassHeading]
	if h.Size != 15 {
		t.Errorf("heading size = %v, want 15 (em resolved against body)", h.Size)
	}
	if !h.Bold || math.Abs(h.SpaceBefore-4) > 1e-9 || math.Abs(h.SpaceAfter-2) > 1e-9 {
		t.Errorf("heading = %+v", h)
	}
	if l := dst.Classes[layout.ClassLabel]; !l.Bold || !l.Italic {
		t.Errorf("label should keep bold and gain italic: %+v", l)
	}
}

func TestStylesheet_ApplyErrors(t *testing.T) {
	p := css.NewParser(nil)
	sheet := p.Parse([]byte(`
.nonexistent { font-size: 9pt }
.title { color: red; font-size: 18pt }
body { line-height: 12pt }
`))

	dst := layout.StyleSheet{BaseSize: 8}
	err := sheet.Apply(&dst)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"nonexistent", "color", "line-height"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
	if dst.Classes[layout.ClassTitle].Size != 18 {
		t.Errorf("valid declaration should still be applied")
	}
}
