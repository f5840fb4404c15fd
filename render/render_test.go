package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"regexp"
	"strconv"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"ksefpdf/assemble"
	"ksefpdf/common"
	"ksefpdf/layout"
)

func newRenderer(t *testing.T) *PDF {
	t.Helper()
	r := NewPDF(zaptest.NewLogger(t))
	r.Compress = false
	r.Creator = "ksefpdf test"
	r.Keywords = []string{"run-id"}
	r.Created = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return r
}

func sampleContent(rows int) layout.Node {
	table := &layout.Table{
		Columns: []layout.Column{
			{Header: "Lp.", Width: 1},
			{Header: "Nazwa towaru lub usługi", Width: 6},
			{Header: "Wartość netto", Width: 2, Align: layout.AlignRight},
		},
		Borders: true,
	}
	for i := range rows {
		table.Rows = append(table.Rows, []layout.Node{
			layout.Cell(strconv.Itoa(i + 1)),
			layout.Cell("Usługa transportowa na trasie Gdańsk – Łódź, zażółć gęślą jaźń"),
			layout.RightCell("1 234,50"),
		})
	}
	return layout.VStack(
		layout.NewSection("header", "",
			layout.Title("Faktura VAT"),
			layout.Subtitle("Faktura podstawowa"),
			&layout.QRCode{Payload: "https://ksef.mf.gov.pl/web/verify/123", Caption: "nie nadano"},
		),
		layout.HStack(
			layout.NewSection("seller", "Sprzedawca", layout.NewText("NIP: 1234567890")),
			layout.NewSection("buyer", "Nabywca", layout.NewText("NIP: 0987654321")),
		),
		&layout.Rule{},
		&layout.Spacer{Height: 2},
		layout.NewSection("items", "Pozycje", table),
	)
}

func pageCount(t *testing.T, data []byte) int {
	t.Helper()
	m := regexp.MustCompile(`/Count (\d+)`).FindSubmatch(data)
	if m == nil {
		t.Fatal("page count not found in output")
	}
	n, _ := strconv.Atoi(string(m[1]))
	return n
}

func TestPDF_Render(t *testing.T) {
	tests := []struct {
		name     string
		kind     common.DocumentType
		mediaBox string
	}{
		{"invoice portrait", common.DocumentTypeInvoice, "/MediaBox [0 0 595.28 841.89]"},
		{"upo landscape", common.DocumentTypeUpo, "/MediaBox [0 0 841.89 595.28]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := assemble.Document(tt.kind, sampleContent(3), assemble.Options{})

			data, err := newRenderer(t).Render(context.Background(), doc)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if !bytes.HasPrefix(data, []byte("%PDF-")) {
				t.Errorf("output is not PDF: %q", data[:min(len(data), 16)])
			}
			if !bytes.Contains(data, []byte(tt.mediaBox)) {
				t.Errorf("output does not contain %q", tt.mediaBox)
			}
			if n := pageCount(t, data); n != 1 {
				t.Errorf("pages = %d, want 1", n)
			}
		})
	}
}

func TestPDF_RenderPaginates(t *testing.T) {
	doc := assemble.Document(common.DocumentTypeInvoice, sampleContent(150), assemble.Options{})

	data, err := newRenderer(t).Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if n := pageCount(t, data); n < 2 {
		t.Errorf("pages = %d, want more than one", n)
	}
}

func TestPDF_RenderFallbackFont(t *testing.T) {
	doc := assemble.Document(common.DocumentTypeInvoice, layout.NewText("Zażółć"), assemble.Options{
		Styles: layout.StyleSheet{Font: "Comic Sans"},
		Footer: "-",
	})

	data, err := newRenderer(t).Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(data) == 0 {
		t.Error("empty output")
	}
}

func TestPDF_RenderErrors(t *testing.T) {
	r := newRenderer(t)

	if _, err := r.Render(context.Background(), nil); !errors.Is(err, common.ErrRenderingFailure) {
		t.Errorf("nil document: error = %v, want %v", err, common.ErrRenderingFailure)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc := assemble.Document(common.DocumentTypeInvoice, layout.NewText("x"), assemble.Options{})
	if _, err := r.Render(ctx, doc); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled context: error = %v, want %v", err, context.Canceled)
	}
}

func TestColumnWidths(t *testing.T) {
	tests := []struct {
		name string
		cols []layout.Column
		want []float64
	}{
		{"all weighted", []layout.Column{{Width: 1}, {Width: 3}}, []float64{25, 75}},
		{"all equal", []layout.Column{{}, {}, {}, {}}, []float64{25, 25, 25, 25}},
		{"mixed", []layout.Column{{Width: 2}, {}, {Width: 4}, {}}, []float64{100.0 / 6, 25, 100.0 / 3, 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := columnWidths(tt.cols, 100)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d widths, want %d", len(got), len(tt.want))
			}
			var sum float64
			for i := range got {
				sum += got[i]
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("width[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
			if math.Abs(sum-100) > 1e-9 {
				t.Errorf("widths sum to %v", sum)
			}
		})
	}
}

func grayPNG(t *testing.T, w, h int) layout.Bitmap {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for x := range w {
		img.SetGray(x, h/2, color.Gray{Y: 0x40})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return layout.Bitmap{Data: buf.Bytes(), Width: w, Height: h}
}

func TestPDF_RenderImage(t *testing.T) {
	logo := grayPNG(t, 120, 40)
	doc := assemble.Document(common.DocumentTypeInvoice, layout.VStack(
		layout.NewText("Faktura"),
		// same bitmap placed twice is embedded once
		&layout.Image{Ref: assemble.LogoRef, Width: 20, Align: layout.AlignRight},
		&layout.Image{Ref: "missing", Width: 20},
	), assemble.Options{Logo: &logo, Footer: "-"})

	data, err := newRenderer(t).Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if n := bytes.Count(data, []byte("/Subtype /Image")); n != 1 {
		t.Errorf("embedded images = %d, want 1", n)
	}
}

func TestImageSize(t *testing.T) {
	w := &writer{bitmaps: map[string]layout.Bitmap{"logo": {Data: []byte{1}, Width: 200, Height: 50}}}

	tests := []struct {
		name  string
		img   *layout.Image
		width float64
		wantW float64
		wantH float64
	}{
		{"requested width", &layout.Image{Ref: "logo", Width: 40}, 100, 40, 10},
		{"clamped to available", &layout.Image{Ref: "logo", Width: 400}, 100, 100, 25},
		{"full width", &layout.Image{Ref: "logo"}, 80, 80, 20},
		{"unknown ref", &layout.Image{Ref: "none", Width: 40}, 100, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw, gh := w.imageSize(tt.img, tt.width)
			if gw != tt.wantW || gh != tt.wantH {
				t.Errorf("imageSize() = %v x %v, want %v x %v", gw, gh, tt.wantW, tt.wantH)
			}
		})
	}
}
