package verify

import (
	"bytes"
	"errors"
	"github.com/swdee/go-svstim"
	"math"
	"path/filepath"
	"strings"
	"testing"
)

func checkerboard(width, height int) *svstim.Frame {
	f := svstim.NewFrame(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x+y)%2 == 0 {
				f.Set(x, y, svstim.Pixel{R: 255, G: 0, B: 100})
			} else {
				f.Set(x, y, svstim.Pixel{R: 0, G: 255, B: 100})
			}
		}
	}

	return f
}

func encode(t *testing.T, f *svstim.Frame, signal, delay string) []byte {
	t.Helper()

	var buf bytes.Buffer

	if _, err := svstim.NewEncoder(signal, delay).Encode(&buf, f); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	return buf.Bytes()
}

func TestReadRoundTrip(t *testing.T) {
	f := checkerboard(96, 96)
	data := encode(t, f, "pix", "#42")

	got, format, err := Read(bytes.NewReader(data), 96, 96)

	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if format.Signal != "pix" || format.Delay != "#42" {
		t.Errorf("unexpected format %+v", format)
	}

	if err := Compare(f, got); err != nil {
		t.Errorf("expected identical frames: %v", err)
	}
}

func TestReadLineCount(t *testing.T) {
	data := encode(t, checkerboard(4, 4), svstim.DefaultSignal, svstim.DefaultDelay)

	if _, _, err := Read(bytes.NewReader(data), 4, 5); !errors.Is(err, ErrLineCount) {
		t.Errorf("expected ErrLineCount for short file, got %v", err)
	}

	if _, _, err := Read(bytes.NewReader(data), 3, 4); !errors.Is(err, ErrLineCount) {
		t.Errorf("expected ErrLineCount for long file, got %v", err)
	}
}

func TestReadInconsistent(t *testing.T) {
	lines := []string{
		svstim.FormatLine(svstim.Pixel{}, "data_in", "#10000"),
		svstim.FormatLine(svstim.Pixel{}, "data_in", "#5"),
	}

	_, _, err := Read(strings.NewReader(strings.Join(lines, "\n")), 2, 1)

	if !errors.Is(err, ErrInconsistent) {
		t.Errorf("expected ErrInconsistent, got %v", err)
	}
}

func TestReadMalformed(t *testing.T) {
	_, _, err := Read(strings.NewReader("data_in <= 24'b0101; #10000;\n"), 1, 1)

	if !errors.Is(err, svstim.ErrMalformedLine) {
		t.Errorf("expected ErrMalformedLine, got %v", err)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, _, err := ReadFile(filepath.Join(t.TempDir(), "none.sv"), 96, 96); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestCompareMismatch(t *testing.T) {
	a := checkerboard(8, 8)
	b := checkerboard(8, 8)
	b.Set(3, 2, svstim.Pixel{R: 1})

	err := Compare(a, b)

	var m *Mismatch

	if !errors.As(err, &m) {
		t.Fatalf("expected Mismatch, got %v", err)
	}

	if m.Index != 2*8+3 {
		t.Errorf("expected mismatch at index 19, got %d", m.Index)
	}

	if err := Compare(a, checkerboard(4, 4)); err == nil {
		t.Errorf("expected size mismatch error")
	}
}

func TestStats(t *testing.T) {
	stats := Stats(checkerboard(96, 96))

	if len(stats) != 3 {
		t.Fatalf("expected 3 channels, got %d", len(stats))
	}

	blue, green, red := stats[0], stats[1], stats[2]

	if blue.Name != "blue" || green.Name != "green" || red.Name != "red" {
		t.Errorf("unexpected channel order %s %s %s", blue.Name, green.Name, red.Name)
	}

	if blue.Mean != 100 || blue.StdDev != 0 || blue.Min != 100 || blue.Max != 100 {
		t.Errorf("unexpected blue stats %s", blue)
	}

	if math.Abs(red.Mean-127.5) > 1e-9 || red.Min != 0 || red.Max != 255 {
		t.Errorf("unexpected red stats %s", red)
	}

	if math.Abs(green.Mean-127.5) > 1e-9 {
		t.Errorf("unexpected green stats %s", green)
	}

	if Stats(svstim.NewFrame(0, 0)) != nil {
		t.Errorf("expected no stats for empty frame")
	}
}
