package common

// WipeByteArray zeroes sensitive data in place.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
