package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC32C(t *testing.T) {
	// Check value of the Castagnoli polynomial.
	assert.Equal(t, uint32(0xe3069283), CRC32C([]byte("123456789")))

	h := NewCRC32C()
	_, _ = h.Write([]byte("12345"))
	_, _ = h.Write([]byte("6789"))
	assert.Equal(t, uint32(0xe3069283), h.Sum32())
}

func TestEncodings(t *testing.T) {
	assert.Equal(t, "4waSgw==", Base64(0xe3069283))
	assert.Equal(t, "e3069283", Fingerprint([]byte("123456789")))
	assert.Equal(t, "00000000", Fingerprint(nil))
}
