package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigest_KnownEmptyInput(t *testing.T) {
	// xxHash64 of the empty input with seed 0 is a well-known constant.
	assert.Equal(t, uint64(0xef46db3751d8e999), Digest(nil))
	assert.Equal(t, uint64(0xef46db3751d8e999), Digest([]byte{}))
}

func TestDigest_Deterministic(t *testing.T) {
	data := []byte("this is a longer test string to hash")
	assert.Equal(t, Digest(data), Digest(data))
}

func TestDigest_DistinctInputsDiffer(t *testing.T) {
	a := Digest([]byte("test"))
	b := Digest([]byte("another test string"))
	assert.NotEqual(t, a, b)
}

func BenchmarkDigest(b *testing.B) {
	data := []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	b.ResetTimer()
	for b.Loop() {
		Digest(data)
	}
}
