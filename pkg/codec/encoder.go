package codec

import "bytes"

// Encoder writes values in a fixed, self-describing-free layout. Callers
// decide the field order; the same order must be used when decoding.
type Encoder struct {
	buf bytes.Buffer
}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bool writes a single byte, 0x01 for true and 0x00 for false
func (e *Encoder) Bool(v bool) *Encoder {
	if v {
		e.buf.WriteByte(0x01)
	} else {
		e.buf.WriteByte(0x00)
	}
	return e
}

// Natural writes v using the general natural number encoding (1-9 bytes)
func (e *Encoder) Natural(v uint64) *Encoder {
	e.buf.Write(EncodeNatural(v))
	return e
}

// Bytes writes a length-prefixed byte sequence
func (e *Encoder) Bytes(b []byte) *Encoder {
	e.Natural(uint64(len(b)))
	e.buf.Write(b)
	return e
}

// Text writes the UTF-8 bytes of s, length-prefixed
func (e *Encoder) Text(s string) *Encoder {
	return e.Bytes([]byte(s))
}

// Result returns a copy of everything written so far
func (e *Encoder) Result() []byte {
	return bytes.Clone(e.buf.Bytes())
}
