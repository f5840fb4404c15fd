package assemble

import (
	"testing"

	"ksefpdf/common"
	"ksefpdf/layout"
)

func TestDocument_Orientation(t *testing.T) {
	tests := []struct {
		kind  common.DocumentType
		want  common.Orientation
		title string
	}{
		{common.DocumentTypeInvoice, common.OrientationPortrait, "Faktura VAT"},
		{common.DocumentTypeUpo, common.OrientationLandscape, "Urzędowe Poświadczenie Odbioru"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			doc := Document(tt.kind, layout.NewText("x"), Options{})
			if doc.Page.Orientation != tt.want {
				t.Errorf("orientation = %s, want %s", doc.Page.Orientation, tt.want)
			}
			if doc.Page.Size != layout.PageA4 {
				t.Errorf("page size = %+v, want A4", doc.Page.Size)
			}
			if doc.Title != tt.title {
				t.Errorf("title = %q, want %q", doc.Title, tt.title)
			}
			w, h := doc.Page.Dimensions()
			if (tt.want == common.OrientationLandscape) != (w > h) {
				t.Errorf("dimensions %vx%v do not match orientation", w, h)
			}
		})
	}
}

func TestDocument_Footer(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"default", "", "Strona 2 z 3"},
		{"custom", "{page}/{pages}", "2/3"},
		{"disabled", "-", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Document(common.DocumentTypeInvoice, nil, Options{Footer: tt.template})
			if tt.want == "" {
				if doc.Footer != nil {
					t.Errorf("footer should be disabled, got %+v", doc.Footer)
				}
				return
			}
			if doc.Footer == nil {
				t.Fatal("footer missing")
			}
			if got := doc.Footer.Resolve(2, "3"); got != tt.want {
				t.Errorf("footer = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocument_StylesAndMargins(t *testing.T) {
	custom := layout.StyleSheet{
		BaseSize: 9,
		Classes: map[layout.Class]layout.Style{
			layout.ClassTitle: {Size: 20},
		},
	}
	m := layout.Margins{Left: 20, Top: 20, Right: 20, Bottom: 20}

	doc := Document(common.DocumentTypeInvoice, nil, Options{Styles: custom, Margins: m, Title: "FV 1/2024"})

	if doc.Title != "FV 1/2024" {
		t.Errorf("title = %q", doc.Title)
	}
	if doc.Page.Margins != m {
		t.Errorf("margins = %+v, want %+v", doc.Page.Margins, m)
	}
	if doc.Styles.Font != DefaultFont || doc.Styles.BaseSize != 9 || doc.Styles.LineHeight <= 0 {
		t.Errorf("styles = %+v", doc.Styles)
	}
	if doc.Styles.Classes[layout.ClassTitle].Size != 20 {
		t.Errorf("title class should be overridden")
	}
	if doc.Styles.Classes[layout.ClassHeading].Size == 0 {
		t.Errorf("heading class should come from defaults")
	}

	doc.Styles.Classes[layout.ClassSmall] = layout.Style{Size: 1}
	if DefaultStyles().Classes[layout.ClassSmall].Size == 1 || custom.Classes[layout.ClassSmall].Size == 1 {
		t.Errorf("document styles must not alias defaults or options")
	}

	if got := Document(common.DocumentTypeUpo, nil, Options{}).Page.Margins; got != defaultMargins {
		t.Errorf("zero margins should take defaults, got %+v", got)
	}
}

func TestDocument_Logo(t *testing.T) {
	logo := &layout.Bitmap{Data: []byte{0x89, 'P', 'N', 'G'}, Width: 300, Height: 100}
	content := layout.NewText("x")

	tests := []struct {
		name      string
		kind      common.DocumentType
		logo      *layout.Bitmap
		width     float64
		wantImage bool
		wantWidth float64
	}{
		{"invoice", common.DocumentTypeInvoice, logo, 30, true, 30},
		{"invoice default width", common.DocumentTypeInvoice, logo, 0, true, DefaultLogoWidth},
		{"invoice without logo", common.DocumentTypeInvoice, nil, 30, false, 0},
		{"invoice with empty logo", common.DocumentTypeInvoice, &layout.Bitmap{}, 30, false, 0},
		{"upo", common.DocumentTypeUpo, logo, 30, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Document(tt.kind, content, Options{Logo: tt.logo, LogoWidth: tt.width})
			if !tt.wantImage {
				if doc.Content != content || len(doc.Images) != 0 {
					t.Errorf("content should be left alone, got %s", doc)
				}
				return
			}
			if _, ok := doc.Images[LogoRef]; !ok {
				t.Fatalf("logo bitmap missing: %v", doc.Images)
			}
			st, ok := doc.Content.(*layout.Stack)
			if !ok || len(st.Items) != 3 {
				t.Fatalf("unexpected content %s", doc)
			}
			img, ok := st.Items[0].(*layout.Image)
			if !ok || img.Ref != LogoRef || img.Width != tt.wantWidth {
				t.Errorf("first item = %#v", st.Items[0])
			}
			if st.Items[2] != content {
				t.Error("content must follow logo")
			}
		})
	}
}
