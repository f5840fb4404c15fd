package render

import (
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// fontSet maps fpdf style ("", "B", "I", "BI") to TrueType data.
type fontSet map[string][]byte

// Go fonts cover Latin Extended-A, which is all Polish documents need.
var families = map[string]fontSet{
	"go": {
		"":   goregular.TTF,
		"B":  gobold.TTF,
		"I":  goitalic.TTF,
		"BI": gobolditalic.TTF,
	},
	"go mono": {
		"":   gomono.TTF,
		"B":  gomonobold.TTF,
		"I":  gomonoitalic.TTF,
		"BI": gomonobolditalic.TTF,
	},
}

const fallbackFamily = "Go"

// registerFonts embeds requested family and returns name to use with
// SetFont. Unknown families are replaced with fallback.
func registerFonts(pdf *fpdf.Fpdf, family string) string {
	set, ok := families[strings.ToLower(family)]
	if !ok {
		family = fallbackFamily
		set = families[strings.ToLower(family)]
	}
	for _, style := range []string{"", "B", "I", "BI"} {
		pdf.AddUTF8FontFromBytes(family, style, set[style])
	}
	return family
}
