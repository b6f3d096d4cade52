package codec

import (
	"encoding/binary"
	"math"
)

// EncodeNatural implements the general natural number encoding: values below
// 2^(7l) take l+1 bytes, a prefix byte whose leading ones count the trailing
// bytes, followed by the low bytes in little-endian order. Values of 2^56 and
// above take nine bytes, 0xff followed by the full little-endian uint64.
func EncodeNatural(x uint64) []byte {
	var l uint8
	for l = 0; l < 8; l++ {
		if x < (1 << (7 * (l + 1))) {
			break
		}
	}
	out := make([]byte, 0, l+1)
	if l < 8 {
		prefix := uint8((256 - (1 << (8 - l))) + (x>>(8*l))&math.MaxUint8)
		out = append(out, prefix)
	} else {
		out = append(out, math.MaxUint8)
	}
	for i := 0; i < int(l); i++ {
		out = append(out, uint8((x>>(8*i))&math.MaxUint8))
	}
	return out
}

// decodeNatural reverses EncodeNatural given the full serialized form, whose
// first byte announces l trailing bytes.
func decodeNatural(serialized []byte, l uint8) (uint64, error) {
	if len(serialized) == 0 {
		return 0, nil
	}
	if l == 8 {
		if serialized[0] != math.MaxUint8 {
			return 0, errFirstByteNineByteSerialization
		}
		return binary.LittleEndian.Uint64(serialized[1:9]), nil
	}

	var u uint64
	for i := uint8(0); i < l; i++ {
		u |= uint64(serialized[i+1]) << (8 * i)
	}
	u |= uint64(serialized[0]&(math.MaxUint8>>l)) << (8 * l)
	return u, nil
}
