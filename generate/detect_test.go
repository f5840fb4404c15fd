package generate

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

func TestIsArchiveFile(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"xml", writeFile(t, tmpDir, "faktura.xml", invoiceFA1), false},
		{"zip extension but invalid content", writeFile(t, tmpDir, "fake.zip", "not a real zip file"), false},
		{"zip", writeZip(t, tmpDir, "real.zip", map[string]string{"a.xml": invoiceFA1}), true},
		{"zip without extension", writeZip(t, tmpDir, "package", map[string]string{"a.xml": invoiceFA1}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := isArchiveFile(tt.path)
			if err != nil {
				t.Fatalf("isArchiveFile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("isArchiveFile() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := isArchiveFile(filepath.Join(tmpDir, "nonexistent.zip")); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestDetectUTF(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want srcEncoding
	}{
		{"UTF-8 BOM", []byte{0xEF, 0xBB, 0xBF, 0x3C}, encUTF8},
		{"UTF-16 Big Endian BOM", []byte{0xFE, 0xFF, 0x00, 0x3C}, encUTF16BigEndian},
		{"UTF-16 Little Endian BOM", []byte{0xFF, 0xFE, 0x3C, 0x00}, encUTF16LittleEndian},
		{"UTF-32 Big Endian BOM", []byte{0x00, 0x00, 0xFE, 0xFF}, encUTF32BigEndian},
		{"UTF-32 Little Endian BOM", []byte{0xFF, 0xFE, 0x00, 0x00}, encUTF32LittleEndian},
		{"No BOM", []byte("<?xml"), encUnknown},
		{"Empty", nil, encUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectUTF(tt.buf); got != tt.want {
				t.Errorf("detectUTF() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsXML(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want bool
	}{
		{"declaration", []byte(`<?xml version="1.0"?><Faktura/>`), true},
		{"leading blanks", []byte("\r\n  <Faktura/>"), true},
		{"bom", append([]byte{0xEF, 0xBB, 0xBF}, "<Faktura/>"...), true},
		{"utf16 bom", []byte{0xFF, 0xFE, '<', 0}, true},
		{"text", []byte("Faktura VAT"), false},
		{"empty", nil, false},
		{"gif", []byte("GIF89a<<<<"), false},
		{"zip", []byte{'P', 'K', 0x03, 0x04, '<'}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := isXML(tt.buf); got != tt.want {
				t.Errorf("isXML() = %v, want %v", got, tt.want)
			}
		})
	}
}

func encode(t *testing.T, s string, tr transform.Transformer) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := transform.NewWriter(&buf, tr)
	if _, err := w.Write([]byte(s)); err != nil {
		t.Fatalf("encode sample: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("finalize encoded sample: %v", err)
	}
	return buf.Bytes()
}

func TestSelectReader(t *testing.T) {
	const text = `<?xml version="1.0" encoding="UTF-16"?><Faktura><P_3A>Łódź</P_3A></Faktura>`

	tests := []struct {
		name        string
		data        []byte
		forced      bool
		wantDecoded bool
	}{
		{"plain", []byte(text), false, false},
		{"utf8 bom", append([]byte{0xEF, 0xBB, 0xBF}, text...), false, false},
		{"utf16be", encode(t, text, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()), false, true},
		{"utf16le", encode(t, text, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()), false, true},
		{"utf32be", encode(t, text, utf32.UTF32(utf32.BigEndian, utf32.UseBOM).NewEncoder()), false, true},
		{"utf32le", encode(t, text, utf32.UTF32(utf32.LittleEndian, utf32.UseBOM).NewEncoder()), false, true},
		{"forced code page", encode(t, text, charmap.Windows1250.NewEncoder()), true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cp encoding.Encoding
			if tt.forced {
				cp = charmap.Windows1250
			}
			r, decoded := selectReader(bytes.NewReader(tt.data), detectUTF(tt.data), cp)
			if decoded != tt.wantDecoded {
				t.Errorf("decoded = %v, want %v", decoded, tt.wantDecoded)
			}
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if string(got) != text {
				t.Errorf("got %q, want %q", got, text)
			}
		})
	}
}

func TestReadDecodedUTF16(t *testing.T) {
	const text = `<?xml version="1.0" encoding="UTF-16"?><Faktura><P_3A>Łódź</P_3A></Faktura>`
	dir := t.TempDir()
	path := filepath.Join(dir, "utf16.xml")
	if err := os.WriteFile(path, encode(t, text, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()), 0644); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	s := &source{name: "utf16.xml", origin: path, data: data}
	r, decoded, err := s.open(nil)
	if err != nil {
		t.Fatalf("open() error = %v", err)
	}
	n, err := Read(r, decoded)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got := n.Value("Faktura", "P_3A"); got != "Łódź" {
		t.Errorf("P_3A = %q", got)
	}
}
