package codec

import "errors"

var (
	// errFirstByteNineByteSerialization is returned when the first byte has wrong value in 9-byte serialization
	errFirstByteNineByteSerialization = errors.New("expected first byte to be 255 for 9-byte serialization")
	ErrDecodingBool                   = errors.New("error decoding boolean")
	ErrExceedingByteArrayLimit        = errors.New("byte array length exceeds max value of uint32")
	ErrTrailingBytes                  = errors.New("trailing bytes after decoding")

	ErrReadingBytes = "error reading bytes: %w"
	ErrReadingByte  = "error reading byte: %w"
	ErrDecodingUint = "error decoding uint: %w"
)
