package functions

import (
	"strings"
	"unicode/utf8"
)

// streamDecoder incrementally decodes UTF-8 byte chunks into text. Transport
// chunk boundaries are arbitrary, so a multi-byte rune may straddle two
// chunks; the decoder holds the incomplete tail bytes until the next write
// completes them.
type streamDecoder struct {
	pending []byte
}

// Write consumes one transport chunk and returns the decoded text that is
// complete so far. Bytes forming an incomplete trailing rune are retained
// for the next call; stray invalid bytes mid-chunk decode to the replacement
// character immediately.
func (d *streamDecoder) Write(p []byte) string {
	b := p
	if len(d.pending) > 0 {
		b = append(d.pending, p...)
		d.pending = nil
	}

	cut := len(b)
	// A rune is at most utf8.UTFMax bytes, so only the tail needs checking.
	for i := len(b) - 1; i >= 0 && i > len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				cut = i
			}
			break
		}
	}

	if cut < len(b) {
		d.pending = append([]byte(nil), b[cut:]...)
	}
	return strings.ToValidUTF8(string(b[:cut]), string(utf8.RuneError))
}

// Flush returns whatever the decoder still holds at end-of-stream. An
// incomplete trailing sequence decodes lossily to the replacement character,
// matching what a final non-streaming decode would produce.
func (d *streamDecoder) Flush() string {
	if len(d.pending) == 0 {
		return ""
	}
	s := strings.ToValidUTF8(string(d.pending), string(utf8.RuneError))
	d.pending = nil
	return s
}
