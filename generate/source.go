package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	fixzip "github.com/hidez8891/zip"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"ksefpdf/archive"
	"ksefpdf/common"
)

// source is located input document.
type source struct {
	// name is base file name for plain files and path inside archive for
	// zip packages, it is what output is named after.
	name string
	// origin is file system path of the file or archive.
	origin string
	data   []byte
}

func (s *source) String() string {
	if s.origin == "" || filepath.Base(s.origin) == s.name {
		return s.origin
	}
	return s.origin + string(filepath.Separator) + filepath.FromSlash(s.name)
}

const xmlPattern = "*.xml"

var errFound = errors.New("found")

// locate resolves src which is either path to XML file or path to zip
// archive followed by path inside it ("package.zip/2024/01"). In the latter
// case first XML entry under inner path is used, entries are taken in
// natural name order.
func locate(ctx context.Context, src string, log *zap.Logger) (*source, error) {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exist, probably path in archive
			continue
		}

		if fi.IsDir() {
			if len(tail) != 0 {
				return nil, fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			return nil, fmt.Errorf("input source is a directory (%s), single document or archive is expected", head)
		}
		if !fi.Mode().IsRegular() {
			return nil, fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return nil, fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			inner := strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			return fromArchive(ctx, head, filepath.ToSlash(inner), log)
		}

		if len(tail) != 0 {
			// plain file cannot have tail
			return nil, fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		data, err := os.ReadFile(head)
		if err != nil {
			return nil, err
		}
		return &source{name: filepath.Base(head), origin: head, data: data}, nil
	}
	return nil, fmt.Errorf("input source was not found (%s)", src)
}

func fromArchive(ctx context.Context, arc, inner string, log *zap.Logger) (*source, error) {
	inner = strings.Trim(inner, "/")

	var found *source
	err := archive.Walk(arc, xmlPattern, func(arc string, f *fixzip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !underPath(inner, f.Name) {
			return nil
		}

		r, err := f.Open()
		if err != nil {
			return fmt.Errorf("unable to open %s: %w", f.Name, err)
		}
		defer r.Close()

		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("unable to read %s: %w", f.Name, err)
		}
		if ok, _ := isXML(data); !ok {
			log.Debug("Skipping archive entry, not XML", zap.String("archive", arc), zap.String("entry", f.Name))
			return nil
		}
		found = &source{name: f.Name, origin: arc, data: data}
		return errFound
	})
	if err != nil && !errors.Is(err, errFound) {
		return nil, fmt.Errorf("unable to process archive: %w", err)
	}
	if found == nil {
		if inner == "" {
			return nil, fmt.Errorf("no XML documents in archive (%s)", arc)
		}
		return nil, fmt.Errorf("no XML documents under (%s) in archive (%s)", inner, arc)
	}
	log.Debug("Using archive entry", zap.String("archive", arc), zap.String("entry", found.name))
	return found, nil
}

// underPath reports whether entry is inner itself or lies below it.
func underPath(inner, name string) bool {
	if inner == "" {
		return true
	}
	name = path.Clean(strings.ReplaceAll(name, `\`, "/"))
	return name == inner || strings.HasPrefix(name, inner+"/")
}

// open checks that source looks like XML and returns UTF-8 reader for it.
func (s *source) open(cp encoding.Encoding) (io.Reader, bool, error) {
	ok, enc := isXML(s.data)
	if !ok {
		return nil, false, fmt.Errorf("%w: %s does not look like XML document", common.ErrMalformedInput, s.name)
	}
	r, decoded := selectReader(bytes.NewReader(s.data), enc, cp)
	return r, decoded, nil
}
