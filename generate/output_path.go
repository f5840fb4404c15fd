package generate

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"ksefpdf/config"
	"ksefpdf/state"
)

const outputExt = ".pdf"

// buildOutputPath returns constructed output file path. When dst names a
// file it is used as is, otherwise file goes into dst directory and is named
// either after the source or by configured template. Template may produce
// subdirectories. Names are cleaned and, if requested, transliterated.
func buildOutputPath(values Values, dst string, env *state.LocalEnv) string {
	if fi, err := os.Stat(dst); dst != "" && (err != nil || !fi.IsDir()) {
		return dst
	}

	defaultFile := cleanPathSegment(values.Base, env) + outputExt
	if env.Cfg.Document.OutputNameTemplate == "" {
		return filepath.Join(dst, defaultFile)
	}

	expandedName := expandOutputNameTemplate(values, env)
	if expandedName == "" {
		// fallback to default name if template expansion failed
		return filepath.Join(dst, defaultFile)
	}
	return assemblePathWithSubdirs(dst, expandedName, env)
}

func expandOutputNameTemplate(values Values, env *state.LocalEnv) string {
	expandedName, err := expandTemplate(config.OutputNameTemplateFieldName, env.Cfg.Document.OutputNameTemplate, values)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(filepath.FromSlash(expandedName))
}

// assemblePathWithSubdirs takes an expanded template name (which may contain
// path separators for subdirectories) and assembles it into a full output
// path, cleaning and transliterating segments as needed.
func assemblePathWithSubdirs(outDir, expandedName string, env *state.LocalEnv) string {
	segments := splitPath(expandedName)
	if len(segments) == 0 {
		return filepath.Join(outDir, cleanPathSegment("", env)+outputExt)
	}

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, outDir)
	for _, segment := range segments[:len(segments)-1] {
		parts = append(parts, cleanPathSegment(segment, env))
	}
	parts = append(parts, cleanPathSegment(segments[len(segments)-1], env)+outputExt)
	return filepath.Join(parts...)
}

// splitPath breaks path into its elements dropping empty ones, volume name
// and parent references, so template cannot point outside of output
// directory.
func splitPath(p string) []string {
	p = strings.TrimPrefix(p, filepath.VolumeName(p))
	segments := strings.FieldsFunc(p, func(r rune) bool {
		return r == '/' || r == os.PathSeparator
	})
	return slices.DeleteFunc(segments, func(s string) bool {
		return strings.TrimSpace(s) == "" || s == "." || s == ".."
	})
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Document.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
