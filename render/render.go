// Package render turns layout documents into PDF.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"ksefpdf/common"
	"ksefpdf/layout"
)

// Renderer produces final bytes from complete layout document. Empty result
// is never returned without error.
type Renderer interface {
	Render(ctx context.Context, doc *layout.Document) ([]byte, error)
}

// PDF renders documents with fpdf. Fonts are embedded, so output does not
// depend on what is installed on the machine.
type PDF struct {
	Creator  string
	Keywords []string
	Compress bool
	// Created is written into document info, zero means current time.
	Created time.Time

	log *zap.Logger
}

var _ Renderer = (*PDF)(nil)

func NewPDF(log *zap.Logger) *PDF {
	if log == nil {
		log = zap.NewNop()
	}
	return &PDF{Compress: true, log: log.Named("render")}
}

func (r *PDF) Render(ctx context.Context, doc *layout.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: no document", common.ErrRenderingFailure)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	orientation := "P"
	if doc.Page.Orientation == common.OrientationLandscape {
		orientation = "L"
	}
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: doc.Page.Size.Width, Ht: doc.Page.Size.Height},
	})
	pdf.SetCompression(r.Compress)

	family := registerFonts(pdf, doc.Styles.Font)
	if !strings.EqualFold(family, doc.Styles.Font) {
		r.log.Warn("Font is not available, using default", zap.String("requested", doc.Styles.Font), zap.String("used", family))
	}

	m := doc.Page.Margins
	pdf.SetMargins(m.Left, m.Top, m.Right)
	pdf.SetAutoPageBreak(true, m.Bottom)
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.2)

	pdf.SetTitle(doc.Title, true)
	pdf.SetSubject(doc.Kind.String(), true)
	if r.Creator != "" {
		pdf.SetCreator(r.Creator, true)
	}
	if len(r.Keywords) > 0 {
		pdf.SetKeywords(strings.Join(r.Keywords, " "), true)
	}
	created := r.Created
	if created.IsZero() {
		created = time.Now()
	}
	pdf.SetCreationDate(created)

	w := &writer{pdf: pdf, family: family, styles: doc.Styles, bitmaps: doc.Images}
	if w.styles.LineHeight <= 0 {
		w.styles.LineHeight = 1.2
	}
	if doc.Footer != nil {
		w.footer(*doc.Footer)
	}

	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	w.draw(doc.Content, m.Left, pageW-m.Left-m.Right)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrRenderingFailure, err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrRenderingFailure, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: empty output", common.ErrRenderingFailure)
	}

	r.log.Debug("Document rendered",
		zap.Stringer("kind", doc.Kind),
		zap.Int("pages", pdf.PageCount()),
		zap.Int("bytes", buf.Len()),
		zap.Duration("elapsed", time.Since(start)))
	return buf.Bytes(), nil
}
