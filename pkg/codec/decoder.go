package codec

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"math/bits"
)

// Decoder reads values written by Encoder, in the same order.
type Decoder struct {
	r *bytes.Reader
}

func NewDecoder(data []byte) *Decoder {
	return &Decoder{r: bytes.NewReader(data)}
}

func (d *Decoder) readOctet() (byte, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf(ErrReadingByte, err)
	}
	return b, nil
}

func (d *Decoder) readFull(n uint64) ([]byte, error) {
	if n > math.MaxUint32 {
		return nil, ErrExceedingByteArrayLimit
	}
	if n > uint64(d.r.Len()) {
		return nil, fmt.Errorf(ErrReadingBytes, io.ErrUnexpectedEOF)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(d.r, b); err != nil {
		return nil, fmt.Errorf(ErrReadingBytes, err)
	}
	return b, nil
}

func (d *Decoder) Bool() (bool, error) {
	b, err := d.readOctet()
	if err != nil {
		return false, err
	}
	switch b {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, ErrDecodingBool
	}
}

func (d *Decoder) Natural() (uint64, error) {
	prefix, err := d.readOctet()
	if err != nil {
		return 0, err
	}
	// the number of leading ones in the prefix is the number of trailing bytes
	l := uint8(bits.LeadingZeros8(^prefix))
	rest, err := d.readFull(uint64(l))
	if err != nil {
		return 0, fmt.Errorf(ErrDecodingUint, err)
	}
	v, err := decodeNatural(append([]byte{prefix}, rest...), l)
	if err != nil {
		return 0, fmt.Errorf(ErrDecodingUint, err)
	}
	return v, nil
}

func (d *Decoder) Bytes() ([]byte, error) {
	n, err := d.Natural()
	if err != nil {
		return nil, err
	}
	return d.readFull(n)
}

func (d *Decoder) Text() (string, error) {
	b, err := d.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Finish returns ErrTrailingBytes if any input was left unread
func (d *Decoder) Finish() error {
	if d.r.Len() != 0 {
		return fmt.Errorf("%w: %d", ErrTrailingBytes, d.r.Len())
	}
	return nil
}
