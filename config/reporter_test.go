package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open report: %v", err)
	}
	defer r.Close()

	out := make(map[string]string)
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReport(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}

	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	stored := filepath.Join(dir, "stored.txt")
	if err := os.WriteFile(stored, []byte("late content"), 0644); err != nil {
		t.Fatal(err)
	}
	copied := filepath.Join(dir, "copied.xml")
	if err := os.WriteFile(copied, []byte("<Faktura/>"), 0644); err != nil {
		t.Fatal(err)
	}

	r.Store("stored.txt", stored)
	r.Store("missing.log", filepath.Join(dir, "does-not-exist.log"))
	if err := r.StoreCopy("source.xml", copied); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	r.StoreData("layout.txt", []byte("first"))
	r.StoreData("layout.txt", []byte("second"))

	// copy must not see later changes
	if err := os.WriteFile(copied, []byte("changed"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if r.Name() != conf.Destination {
		t.Errorf("Name() = %q, want %q", r.Name(), conf.Destination)
	}

	files := readArchive(t, conf.Destination)
	if files["stored.txt"] != "late content" {
		t.Errorf("stored.txt = %q", files["stored.txt"])
	}
	if files["source.xml"] != "<Faktura/>" {
		t.Errorf("source.xml = %q, copy should be taken at call time", files["source.xml"])
	}
	if _, ok := files["missing.log"]; ok {
		t.Error("absent file should be skipped")
	}
	var layouts int
	for name, content := range files {
		if strings.HasPrefix(name, "layout.txt") {
			layouts++
			if content != "first" && content != "second" {
				t.Errorf("%s = %q", name, content)
			}
		}
	}
	if layouts != 2 {
		t.Errorf("expected both layout entries to be kept, got %d", layouts)
	}
	if !strings.Contains(files["MANIFEST"], "source.xml") {
		t.Errorf("MANIFEST does not list source.xml:\n%s", files["MANIFEST"])
	}
}

func TestReport_Nil(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreData("a", []byte("b"))
	if err := r.StoreCopy("a", "/nonexistent"); err != nil {
		t.Errorf("StoreCopy on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Errorf("Name() on nil report = %q", r.Name())
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReport_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
