package zipkin

import "strconv"

// buffer is the byte sink for the write pass. It appends into a slice whose
// capacity was computed by the size pass, so a correct encoder pair never
// reallocates and never leaves slack.
type buffer struct {
	bytes []byte
}

func newBuffer(size int) *buffer {
	return &buffer{bytes: make([]byte, 0, size)}
}

func (b *buffer) writeByte(c byte) {
	b.bytes = append(b.bytes, c)
}

// writeASCII appends s, which must not require JSON escaping.
func (b *buffer) writeASCII(s string) {
	b.bytes = append(b.bytes, s...)
}

// writeEscaped appends the JSON-escaped form of s, exactly
// jsonEscapedSize(s) bytes.
func (b *buffer) writeEscaped(s string) {
	b.bytes = appendEscaped(b.bytes, s)
}

// writeUint appends the unsigned decimal rendering of u: no sign, no leading
// zeros, no grouping.
func (b *buffer) writeUint(u uint64) {
	b.bytes = strconv.AppendUint(b.bytes, u, 10)
}

// asciiSizeInBytes returns the number of digits writeUint produces for u.
func asciiSizeInBytes(u uint64) int {
	n := 1
	for u >= 10 {
		u /= 10
		n++
	}
	return n
}
