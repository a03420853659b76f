package common

// WipeByteArray overwrites the contents of b with zeros. Used to scrub
// passwords from memory once they have been handed to the transport.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
