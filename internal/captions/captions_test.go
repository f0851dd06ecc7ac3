package captions

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCaptionLines(t *testing.T) {
	c := Caption{Text: "Empower your evolution.\nEvery step of improvement\nis a stride toward power."}

	lines := c.Lines()
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Empower your evolution." {
		t.Errorf("First line = %q", lines[0])
	}

	single := Caption{Text: "no breaks here"}
	if got := len(single.Lines()); got != 1 {
		t.Errorf("Single-line caption split into %d lines", got)
	}
}

func TestCaptionLenRunes(t *testing.T) {
	c := Caption{Text: "привет"}
	if c.Len() != 6 {
		t.Errorf("Len = %d, want 6 code points", c.Len())
	}

	// The line-break marker counts toward the length.
	c = Caption{Text: "a\nb"}
	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}
}

func TestReadScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.yaml")

	data := `version: "1.0"
captions:
  - text: "first caption"
  - text: "second\nwith a break"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	script, err := ReadScript(path)
	if err != nil {
		t.Fatalf("ReadScript failed: %v", err)
	}

	if len(script.Captions) != 2 {
		t.Fatalf("Expected 2 captions, got %d", len(script.Captions))
	}
	if got := len(script.Captions[1].Lines()); got != 2 {
		t.Errorf("Second caption should have 2 lines, got %d", got)
	}
	if script.TotalLen() != len("first caption")+len("second\nwith a break") {
		t.Errorf("TotalLen = %d", script.TotalLen())
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")

	in := &Script{Version: "1.0", Captions: []Caption{{Text: "hello\nworld"}}}
	if err := WriteScript(in, path); err != nil {
		t.Fatalf("WriteScript failed: %v", err)
	}

	out, err := ReadScript(path)
	if err != nil {
		t.Fatalf("ReadScript failed: %v", err)
	}
	if len(out.Captions) != 1 || out.Captions[0].Text != "hello\nworld" {
		t.Errorf("Round trip mismatch: %+v", out)
	}
}

func TestParseInline(t *testing.T) {
	script := ParseInline(`first|second\nline| |third`)

	if len(script.Captions) != 3 {
		t.Fatalf("Expected 3 captions, got %d", len(script.Captions))
	}
	if script.Captions[1].Text != "second\nline" {
		t.Errorf("Literal \\n should become a line break, got %q", script.Captions[1].Text)
	}
}

func TestFindLatestScript(t *testing.T) {
	dir := t.TempDir()

	files := []string{"old.yaml", "mid.yml", "new.yaml"}
	for i, name := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("version: \"1.0\"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		modTime := time.Now().Add(time.Duration(i-len(files)) * time.Hour)
		os.Chtimes(path, modTime, modTime)
	}

	latest, err := FindLatestScript(dir)
	if err != nil {
		t.Fatalf("FindLatestScript failed: %v", err)
	}
	if filepath.Base(latest) != "new.yaml" {
		t.Errorf("Latest = %s, want new.yaml", latest)
	}

	if _, err := FindLatestScript(t.TempDir()); err == nil {
		t.Error("Empty directory should fail")
	}
}
