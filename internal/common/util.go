package common

// WipeByteArray zeroes b in place. It is used on password buffers once they
// are no longer needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
