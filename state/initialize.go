package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ksefpdf/assemble"
	"ksefpdf/config"
	"ksefpdf/css"
	"ksefpdf/layout"
	"ksefpdf/utils/images"
)

func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:  time.Now(),
		RunID:  uuid.NewString(),
		Styles: assemble.DefaultStyles(),
	}
}

// PrepareStyles builds style sheet from configured fonts and applies user
// stylesheet on top of it. Problems with supported properties are errors,
// constructs stylesheet does not understand are only logged.
func (e *LocalEnv) PrepareStyles() error {
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}

	e.Styles = ConfiguredStyles(e.Cfg.Document.Fonts)

	path := e.Cfg.Document.StylesheetPath
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read stylesheet: %w", err)
	}
	if err := e.Rpt.StoreCopy("stylesheet.css", path); err != nil {
		log.Warn("Unable to store stylesheet in report", zap.Error(err))
	}

	sheet := css.NewParser(log).Parse(data, path)
	for _, w := range sheet.Warnings {
		log.Warn("Stylesheet construct ignored", zap.String("file", path), zap.String("reason", w))
	}
	if err := sheet.Apply(&e.Styles); err != nil {
		return fmt.Errorf("bad stylesheet %s: %w", path, err)
	}
	log.Debug("Stylesheet applied", zap.String("file", path), zap.Int("rules", len(sheet.Rules)))
	return nil
}

// PrepareLogo loads and converts configured logo once per run.
func (e *LocalEnv) PrepareLogo() error {
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}

	e.Logo = nil
	cfg := e.Cfg.Document.Logo
	if cfg.Path == "" {
		return nil
	}
	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		return fmt.Errorf("unable to read logo: %w", err)
	}
	if err := e.Rpt.StoreCopy("logo"+filepath.Ext(cfg.Path), cfg.Path); err != nil {
		log.Warn("Unable to store logo in report", zap.Error(err))
	}
	bm, err := images.PrepareLogo(data, cfg.Width, log.Named("logo"))
	if err != nil {
		return fmt.Errorf("bad logo %s: %w", cfg.Path, err)
	}
	e.Logo = &bm
	return nil
}

// ConfiguredStyles converts font configuration to style sheet, classes not
// covered by configuration keep their defaults.
func ConfiguredStyles(fonts config.FontsConfig) layout.StyleSheet {
	st := assemble.DefaultStyles()
	if fonts.Family != "" {
		st.Font = fonts.Family
	}
	if fonts.BaseSize > 0 {
		st.BaseSize = fonts.BaseSize
	}
	if fonts.LineHeight > 0 {
		st.LineHeight = fonts.LineHeight
	}
	resize := func(c layout.Class, size float64) {
		if size > 0 {
			s := st.Classes[c]
			s.Size = size
			st.Classes[c] = s
		}
	}
	resize(layout.ClassTitle, fonts.TitleSize)
	resize(layout.ClassHeading, fonts.HeadingSize)
	resize(layout.ClassTableHeader, fonts.TableSize)
	resize(layout.ClassTableCell, fonts.TableSize)
	resize(layout.ClassSmall, fonts.SmallSize)
	return st
}
