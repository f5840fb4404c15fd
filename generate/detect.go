package generate

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/h2non/filetype"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

// enough for filetype matchers and XML declaration
const headerSize = 512

func readHeader(r io.Reader) ([]byte, error) {
	buf := make([]byte, headerSize)
	n, err := io.ReadFull(r, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = nil
	}
	return buf[:n], err
}

func isArchiveFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head, err := readHeader(f)
	if err != nil {
		return false, err
	}
	return filetype.Is(head, "zip"), nil
}

// detectUTF looks for byte order mark. UTF-32 LE must be checked before
// UTF-16 LE, its mark starts with the same two bytes.
func detectUTF(buf []byte) srcEncoding {
	switch {
	case bytes.HasPrefix(buf, []byte{0xEF, 0xBB, 0xBF}):
		return encUTF8
	case bytes.HasPrefix(buf, []byte{0x00, 0x00, 0xFE, 0xFF}):
		return encUTF32BigEndian
	case bytes.HasPrefix(buf, []byte{0xFF, 0xFE, 0x00, 0x00}):
		return encUTF32LittleEndian
	case bytes.HasPrefix(buf, []byte{0xFE, 0xFF}):
		return encUTF16BigEndian
	case bytes.HasPrefix(buf, []byte{0xFF, 0xFE}):
		return encUTF16LittleEndian
	}
	return encUnknown
}

// isXML checks whether data could be XML document. Anything filetype
// recognizes (images, archives, office files) is rejected, otherwise
// first non blank character must open a tag. Wide encodings are trusted
// on their byte order mark.
func isXML(head []byte) (bool, srcEncoding) {
	enc := detectUTF(head)
	switch enc {
	case encUnknown, encUTF8:
	default:
		return true, enc
	}
	if kind, _ := filetype.Match(head); kind != filetype.Unknown {
		return false, enc
	}
	if enc == encUTF8 {
		head = head[3:]
	}
	head = bytes.TrimLeft(head, " \t\r\n")
	return bytes.HasPrefix(head, []byte("<")), enc
}

// selectReader returns reader producing UTF-8. Second value reports that
// conversion took place, so encoding named in XML declaration must be
// ignored. Forced code page is only used when there is no byte order mark.
func selectReader(r io.Reader, enc srcEncoding, cp encoding.Encoding) (io.Reader, bool) {
	switch enc {
	case encUTF8:
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder()), false
	case encUTF16BigEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()), true
	case encUTF16LittleEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()), true
	case encUTF32BigEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder()), true
	case encUTF32LittleEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder()), true
	}
	if cp != nil {
		return cp.NewDecoder().Reader(r), true
	}
	return r, false
}
