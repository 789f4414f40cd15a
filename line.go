package svstim

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultSignal is the testbench input bus driven by each line
	DefaultSignal = "data_in"
	// DefaultDelay is the simulated time between successive assignments
	DefaultDelay = "#10000"

	// bitsPerChannel is the width of each binary field in a line
	bitsPerChannel = 8
	// literalPrefix marks a 24 bit binary literal
	literalPrefix = "24'b"
)

// ErrMalformedLine is returned by ParseLine for text that is not a
// stimulus assignment
var ErrMalformedLine = errors.New("malformed stimulus line")

// Word packs a pixel into the 24 bit value driven onto the bus, blue in
// bits [23:16], green in [15:8] and red in [7:0]
func Word(p Pixel) uint32 {
	return uint32(p.B)<<16 | uint32(p.G)<<8 | uint32(p.R)
}

// PixelFromWord is the inverse of Word
func PixelFromWord(w uint32) Pixel {
	return Pixel{
		R: uint8(w),
		G: uint8(w >> 8),
		B: uint8(w >> 16),
	}
}

// appendBinary writes v as an 8 character zero padded binary field
func appendBinary(dst []byte, v uint8) []byte {
	for bit := bitsPerChannel - 1; bit >= 0; bit-- {
		if v&(1<<uint(bit)) != 0 {
			dst = append(dst, '1')
		} else {
			dst = append(dst, '0')
		}
	}
	return dst
}

// AppendLine appends the stimulus assignment for p, without a trailing
// newline, to dst and returns the extended buffer
func AppendLine(dst []byte, p Pixel, signal, delay string) []byte {
	dst = append(dst, signal...)
	dst = append(dst, " <= "...)
	dst = append(dst, literalPrefix...)
	dst = appendBinary(dst, p.B)
	dst = appendBinary(dst, p.G)
	dst = appendBinary(dst, p.R)
	dst = append(dst, "; "...)
	dst = append(dst, delay...)
	dst = append(dst, ';')
	return dst
}

// FormatLine returns the stimulus assignment for p, for example
//
//	data_in <= 24'b000001000000001000000001; #10000;
//
// for the pixel R=1, G=2, B=4
func FormatLine(p Pixel, signal, delay string) string {
	return string(AppendLine(make([]byte, 0, len(signal)+len(delay)+40), p, signal, delay))
}

// ParseLine decodes a stimulus assignment back into its pixel, returning
// also the signal name and delay literal found on the line
func ParseLine(line string) (Pixel, string, string, error) {

	line = strings.TrimRight(line, "\r\n")

	signal, rest, ok := strings.Cut(line, " <= ")

	if !ok || signal == "" {
		return Pixel{}, "", "", fmt.Errorf("%w: missing assignment in %q", ErrMalformedLine, line)
	}

	rest, ok = strings.CutPrefix(rest, literalPrefix)

	if !ok {
		return Pixel{}, "", "", fmt.Errorf("%w: missing 24 bit literal in %q", ErrMalformedLine, line)
	}

	bits, delay, ok := strings.Cut(rest, "; ")

	if !ok || !strings.HasSuffix(delay, ";") {
		return Pixel{}, "", "", fmt.Errorf("%w: missing delay in %q", ErrMalformedLine, line)
	}

	delay = strings.TrimSuffix(delay, ";")

	if len(bits) != 3*bitsPerChannel || strings.Trim(bits, "01") != "" {
		return Pixel{}, "", "", fmt.Errorf("%w: literal %q is not 24 binary digits", ErrMalformedLine, bits)
	}

	w, err := strconv.ParseUint(bits, 2, 24)

	if err != nil {
		return Pixel{}, "", "", fmt.Errorf("%w: %w", ErrMalformedLine, err)
	}

	return PixelFromWord(uint32(w)), signal, delay, nil
}
