package svstim

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// frameLoader is a Loader returning a generated frame, or err if set
type frameLoader struct {
	err   error
	calls int
}

func (l *frameLoader) Load(path string, width, height int) (*Frame, error) {
	l.calls++

	if l.err != nil {
		return nil, l.err
	}

	return gradient(width, height), nil
}

// gradient returns a frame where every pixel differs from its neighbours
func gradient(width, height int) *Frame {
	f := NewFrame(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			f.Set(x, y, Pixel{R: uint8(x), G: uint8(y), B: uint8(x + y)})
		}
	}

	return f
}

func TestEncode(t *testing.T) {
	f := gradient(96, 96)
	var buf bytes.Buffer

	n, err := NewEncoder(DefaultSignal, DefaultDelay).Encode(&buf, f)

	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if n != 9216 {
		t.Errorf("expected 9216 lines reported, got %d", n)
	}

	if !bytes.HasSuffix(buf.Bytes(), []byte(";\n")) {
		t.Errorf("expected output to end with a terminated line")
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")

	if len(lines) != 9216 {
		t.Fatalf("expected 9216 lines, got %d", len(lines))
	}

	// output order must follow row-major pixel order
	for i, line := range lines {
		p, _, _, err := ParseLine(line)

		if err != nil {
			t.Fatalf("line %d: %v", i, err)
		}

		if p != f.Pix[i] {
			t.Fatalf("line %d: expected %v, got %v", i, f.Pix[i], p)
		}
	}
}

func TestEncodeBadFrame(t *testing.T) {
	f := &Frame{Width: 2, Height: 2, Pix: make([]Pixel, 3)}

	if _, err := NewEncoder(DefaultSignal, DefaultDelay).Encode(io.Discard, f); err == nil {
		t.Errorf("expected error for short frame")
	}
}

func countLines(t *testing.T, path string) int {
	t.Helper()

	f, err := os.Open(path)

	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}

	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		n++
	}

	if err := scanner.Err(); err != nil {
		t.Fatalf("scan %s: %v", path, err)
	}

	return n
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.InputPath = filepath.Join(dir, "image.tiff")
	cfg.OutputPath = filepath.Join(dir, "image_input_bin.sv")

	res, err := Convert(cfg, &frameLoader{})

	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	if res.Lines != 9216 {
		t.Errorf("expected 9216 lines, got %d", res.Lines)
	}

	if n := countLines(t, cfg.OutputPath); n != 9216 {
		t.Errorf("expected 9216 lines in file, got %d", n)
	}

	info, err := os.Stat(cfg.OutputPath)

	if err != nil {
		t.Fatalf("stat output: %v", err)
	}

	if info.Mode().Perm() != 0644 {
		t.Errorf("expected mode 0644, got %v", info.Mode().Perm())
	}

	// no temporary files left behind
	entries, err := os.ReadDir(dir)

	if err != nil {
		t.Fatalf("read dir: %v", err)
	}

	if len(entries) != 1 {
		t.Errorf("expected only the output file in %s, got %d entries", dir, len(entries))
	}
}

func TestConvertCustomSize(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.InputPath = "unused"
	cfg.OutputPath = filepath.Join(dir, "out.sv")
	cfg.Width = 32
	cfg.Height = 8

	if _, err := Convert(cfg, &frameLoader{}); err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	if n := countLines(t, cfg.OutputPath); n != 256 {
		t.Errorf("expected 256 lines, got %d", n)
	}
}

func TestConvertIdempotent(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.InputPath = "unused"
	cfg.OutputPath = filepath.Join(dir, "out.sv")

	if _, err := Convert(cfg, &frameLoader{}); err != nil {
		t.Fatalf("first convert failed: %v", err)
	}

	first, err := os.ReadFile(cfg.OutputPath)

	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if _, err := Convert(cfg, &frameLoader{}); err != nil {
		t.Fatalf("second convert failed: %v", err)
	}

	second, err := os.ReadFile(cfg.OutputPath)

	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("expected identical output from repeated runs")
	}
}

func TestConvertDecodeError(t *testing.T) {
	dir := t.TempDir()
	cause := errors.New("not an image")

	cfg := DefaultConfig()
	cfg.InputPath = filepath.Join(dir, "notes.txt")
	cfg.OutputPath = filepath.Join(dir, "out.sv")

	_, err := Convert(cfg, &frameLoader{err: cause})

	var decErr *DecodeError

	if !errors.As(err, &decErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}

	if decErr.Path != cfg.InputPath || !errors.Is(err, cause) {
		t.Errorf("unexpected DecodeError contents: %v", decErr)
	}

	if _, err := os.Stat(cfg.OutputPath); !os.IsNotExist(err) {
		t.Errorf("expected output file to not be created, stat gave %v", err)
	}
}

func TestConvertDecodeErrorKeepsExisting(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.InputPath = "missing.png"
	cfg.OutputPath = filepath.Join(dir, "out.sv")

	existing := []byte("previous stimulus\n")

	if err := os.WriteFile(cfg.OutputPath, existing, 0644); err != nil {
		t.Fatalf("write existing: %v", err)
	}

	_, err := Convert(cfg, &frameLoader{err: &DecodeError{Path: cfg.InputPath, Err: os.ErrNotExist}})

	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped ErrNotExist, got %v", err)
	}

	got, err := os.ReadFile(cfg.OutputPath)

	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if !bytes.Equal(got, existing) {
		t.Errorf("expected existing output to be untouched, got %q", got)
	}
}

func TestConvertIOError(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.InputPath = "unused"
	cfg.OutputPath = filepath.Join(dir, "no-such-dir", "out.sv")

	_, err := Convert(cfg, &frameLoader{})

	var ioErr *IOError

	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %v", err)
	}

	if ioErr.Op != "create" {
		t.Errorf("expected create to fail, got %s", ioErr.Op)
	}
}

func TestConvertInvalidConfig(t *testing.T) {
	l := &frameLoader{}

	cfg := DefaultConfig()
	cfg.InputPath = "in.png"
	cfg.OutputPath = "out.sv"
	cfg.Width = 0

	if _, err := Convert(cfg, l); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	if l.calls != 0 {
		t.Errorf("expected loader to not be called for invalid config")
	}
}

func TestWriteFileAtomicFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.sv")
	cause := errors.New("disk full")

	err := WriteFileAtomic(path, func(w io.Writer) error {
		io.WriteString(w, "data_in <= 24'b")
		return cause
	})

	var ioErr *IOError

	if !errors.As(err, &ioErr) || ioErr.Op != "write" || !errors.Is(err, cause) {
		t.Fatalf("expected write IOError wrapping cause, got %v", err)
	}

	entries, err := os.ReadDir(dir)

	if err != nil {
		t.Fatalf("read dir: %v", err)
	}

	if len(entries) != 0 {
		t.Errorf("expected no files left after failed write, got %d", len(entries))
	}
}
