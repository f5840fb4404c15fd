// Package generate converts single KSeF document into PDF: it locates the
// source, runs it through normalization, classification, building, assembly
// and rendering, and writes the result.
package generate

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"ksefpdf/assemble"
	"ksefpdf/builders"
	"ksefpdf/common"
	"ksefpdf/document"
	"ksefpdf/layout"
	"ksefpdf/render"
	"ksefpdf/xmltree"
)

// Pipeline holds everything needed to turn parsed XML into output bytes.
// It keeps no state between runs.
type Pipeline struct {
	Override *common.DocumentType
	Data     document.AdditionalData
	Options  assemble.Options
	Renderer render.Renderer

	log *zap.Logger
}

// Result collects what every stage produced. On failure fields of stages
// that completed are still set.
type Result struct {
	Normalized *xmltree.Node
	Envelope   document.Envelope
	Document   *layout.Document
	Output     []byte
}

func NewPipeline(renderer render.Renderer, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{Renderer: renderer, log: log.Named("pipeline")}
}

// Read parses XML from r. When decoded is true input is already UTF-8
// regardless of what XML declaration says.
func Read(r io.Reader, decoded bool) (*xmltree.Node, error) {
	if decoded {
		return xmltree.ParseUTF8(r)
	}
	return xmltree.Parse(r)
}

// Run converts raw (not normalized) tree.
func (p *Pipeline) Run(ctx context.Context, raw *xmltree.Node) (*Result, error) {
	res, err := p.Layout(ctx, raw)
	if err != nil {
		return res, err
	}
	return res, p.Render(ctx, res)
}

// Layout normalizes and classifies the tree and assembles layout document
// for it.
func (p *Pipeline) Layout(ctx context.Context, raw *xmltree.Node) (*Result, error) {
	res := &Result{}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	res.Normalized = xmltree.Normalize(raw)

	env, err := document.Classify(res.Normalized, p.Override)
	if err != nil {
		return res, err
	}
	res.Envelope = env
	p.log.Debug("Document classified", zap.Stringer("variant", env))

	content, err := builders.Build(env, p.Data)
	if err != nil {
		return res, fmt.Errorf("unable to build %s: %w", env, err)
	}
	res.Document = assemble.Document(env.Kind(), content, p.Options)
	p.log.Debug("Layout assembled",
		zap.Stringer("orientation", res.Document.Page.Orientation),
		zap.Int("sections", len(layout.Sections(content))))
	return res, nil
}

// Render produces output for assembled document.
func (p *Pipeline) Render(ctx context.Context, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.Renderer == nil {
		return fmt.Errorf("%w: no renderer", common.ErrRenderingFailure)
	}

	start := time.Now()
	out, err := p.Renderer.Render(ctx, res.Document)
	if err != nil {
		return err
	}
	if len(out) == 0 {
		return fmt.Errorf("%w: renderer returned no data", common.ErrRenderingFailure)
	}
	res.Output = out
	p.log.Debug("Document rendered", zap.Int("bytes", len(out)), zap.Duration("elapsed", time.Since(start)))
	return nil
}
