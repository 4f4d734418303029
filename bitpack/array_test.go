package bitpack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_SizesBufferExactly(t *testing.T) {
	a, err := New(10, 1024)
	require.NoError(t, err)
	require.Equal(t, 1280, len(a.Bytes()))
}

func TestSetGet_RoundTrip(t *testing.T) {
	for _, b := range []int{1, 2, 3, 5, 7, 8, 9, 10, 13, 16} {
		a, err := New(b, 200)
		require.NoError(t, err)

		max := uint32(1)<<uint(b) - 1
		for i := 0; i < 200; i++ {
			v := uint32(i) & max
			a.Set(i, v)
		}
		for i := 0; i < 200; i++ {
			v := uint32(i) & max
			require.Equalf(t, v, a.Get(i), "b=%d i=%d", b, i)
		}
	}
}

func TestSet_OverflowPanics(t *testing.T) {
	a, err := New(4, 10)
	require.NoError(t, err)

	require.Panics(t, func() { a.Set(0, 16) })
}

func TestGetSet_OutOfRangePanics(t *testing.T) {
	a, err := New(4, 10)
	require.NoError(t, err)

	require.Panics(t, func() { a.Get(10) })
	require.Panics(t, func() { a.Set(-1, 0) })
}

func TestNew_InvalidBitWidth(t *testing.T) {
	_, err := New(0, 10)
	require.Error(t, err)

	_, err = New(17, 10)
	require.Error(t, err)
}

func TestWrap_ExistingBuffer(t *testing.T) {
	buf := make([]byte, ByteLen(10, 1024))
	a, err := Wrap(buf, 10, 1024)
	require.NoError(t, err)

	a.Set(0, 1023)
	require.Equal(t, uint32(1023), a.Get(0))
}

func TestWrap_TooShort(t *testing.T) {
	_, err := Wrap(make([]byte, 4), 10, 1024)
	require.Error(t, err)
}
