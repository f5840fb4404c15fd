package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"ksefpdf/assemble"
	"ksefpdf/common"
	"ksefpdf/config"
	"ksefpdf/document"
	"ksefpdf/layout"
	"ksefpdf/misc"
	"ksefpdf/render"
	"ksefpdf/state"
)

// Outcome describes produced file, it is what --json prints on success.
type Outcome struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Type   string `json:"type"`
	Size   int    `json:"size"`
}

type failure struct {
	Error string `json:"error"`
}

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("generate")

	if env.JSON = cmd.Bool("json"); env.JSON {
		w := cmd.Root().Writer
		if w == nil {
			w = os.Stdout
		}
		var out *Outcome
		defer func() {
			if werr := writeJSON(w, out, err); werr != nil {
				log.Warn("Unable to write result", zap.Error(werr))
			}
		}()
		out, err = run(ctx, cmd, env, log)
		return err
	}
	_, err = run(ctx, cmd, env, log)
	return err
}

func run(ctx context.Context, cmd *cli.Command, env *state.LocalEnv, log *zap.Logger) (*Outcome, error) {
	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return nil, errors.New("no input source has been specified")
	}
	src, err := filepath.Abs(src)
	if err != nil {
		return nil, err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	dst := cmd.String("output")
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return nil, err
	}

	if env.Override, err = common.ParseDocumentTypeOverride(cmd.String("type")); err != nil {
		return nil, fmt.Errorf("bad document type: %w", err)
	}
	env.RegistryNumber, env.QRCode = cmd.String("nrksef"), cmd.String("qr")
	env.Overwrite = cmd.Bool("overwrite")

	// Documents without byte order mark and without encoding in XML
	// declaration may need to be read with specific code page
	if cp := cmd.String("encoding"); len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting input from code page", zap.String("charset", n))
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.String("run", env.RunID))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

// process locates source document, converts it and writes result.
func process(ctx context.Context, src, dst string, log *zap.Logger) (*Outcome, error) {
	s, err := locate(ctx, src, log)
	if err != nil {
		return nil, err
	}
	return processDocument(ctx, s, dst, log)
}

// processDocument converts single located document. Output file is written
// only when every stage succeeded.
func processDocument(ctx context.Context, s *source, dst string, log *zap.Logger) (out *Outcome, rerr error) {
	env := state.EnvFromContext(ctx)

	var outputName string

	log.Info("Conversion starting", zap.Stringer("from", s))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
			out, rerr = nil, fmt.Errorf("%w: conversion panic: %v", common.ErrRenderingFailure, r)
		} else if rerr == nil {
			log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	env.Rpt.StoreData("source-"+path.Base(s.name), s.data)

	r, decoded, err := s.open(env.CodePage)
	if err != nil {
		return nil, err
	}
	raw, err := Read(r, decoded)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", s.name, err)
	}

	p := NewPipeline(newRenderer(env, log), log)
	p.Override = env.Override
	p.Data = document.AdditionalData{
		RegistryNumber:   env.RegistryNumber,
		QRCode:           env.QRCode,
		NoRegistryNumber: env.Cfg.Document.NoRegistryNumber,
	}
	p.Options = assemble.Options{
		Margins: layout.Margins{
			Left:   env.Cfg.Document.Page.MarginLeft,
			Top:    env.Cfg.Document.Page.MarginTop,
			Right:  env.Cfg.Document.Page.MarginRight,
			Bottom: env.Cfg.Document.Page.MarginBottom,
		},
		Styles:    env.Styles,
		Footer:    env.Cfg.Document.FooterTemplate,
		Logo:      env.Logo,
		LogoWidth: env.Cfg.Document.Logo.Width,
	}

	res, err := p.Layout(ctx, raw)
	if res.Normalized != nil {
		env.Rpt.StoreData("normalized.txt", []byte(res.Normalized.String()))
	}
	if err != nil {
		return nil, err
	}

	values := buildValues(s.name, res.Envelope, p.Data)
	expandFooter(res.Document, values, log)
	env.Rpt.StoreData("layout.txt", []byte(res.Document.String()))

	if err := p.Render(ctx, res); err != nil {
		return nil, err
	}

	outputName = buildOutputPath(values, dst, env)
	if err := writeOutput(outputName, res.Output, env.Overwrite, log); err != nil {
		return nil, err
	}
	env.Rpt.Store("result-"+filepath.Base(outputName), outputName)

	return &Outcome{
		Input:  s.String(),
		Output: outputName,
		Type:   res.Envelope.String(),
		Size:   len(res.Output),
	}, nil
}

func newRenderer(env *state.LocalEnv, log *zap.Logger) *render.PDF {
	r := render.NewPDF(log)
	r.Creator = misc.GetAppName() + " " + misc.GetVersion()
	r.Keywords = []string{env.RunID}
	r.Compress = env.Cfg.Document.Compress
	return r
}

// expandFooter runs footer through template engine when it has actions.
// Page placeholders are not template actions and survive expansion.
func expandFooter(doc *layout.Document, values Values, log *zap.Logger) {
	if doc.Footer == nil || !strings.Contains(doc.Footer.Template, "{{") {
		return
	}
	footer, err := expandTemplate(config.FooterTemplateFieldName, doc.Footer.Template, values)
	if err != nil {
		log.Warn("Unable to prepare page footer, using it as is", zap.Error(err))
		return
	}
	doc.Footer.Template = footer
}

func writeOutput(name string, data []byte, overwrite bool, log *zap.Logger) error {
	if _, err := os.Stat(name); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Warn("Overwriting existing file", zap.String("file", name))
		if err = os.Remove(name); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return os.WriteFile(name, data, 0644)
}

func writeJSON(w io.Writer, out *Outcome, err error) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err != nil {
		return enc.Encode(failure{Error: err.Error()})
	}
	return enc.Encode(out)
}
