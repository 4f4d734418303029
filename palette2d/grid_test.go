package palette2d

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeights_RoundTrip(t *testing.T) {
	g := NewHeights()
	heights := []int16{60, 64, 72}
	for z := 0; z < Side; z++ {
		for x := 0; x < Side; x++ {
			g.Set(x, z, heights[(x+z)%3])
		}
	}

	data := g.Serialize()

	g2, err := DeserializeHeights(data)
	require.NoError(t, err)

	for z := 0; z < Side; z++ {
		for x := 0; x < Side; x++ {
			require.Equal(t, g.Get(x, z), g2.Get(x, z))
		}
	}
}

func TestHeights_ChessboardThreeValues(t *testing.T) {
	g := NewHeights()
	for z := 0; z < Side; z++ {
		for x := 0; x < Side; x++ {
			switch {
			case (x+z)%2 == 0:
				g.Set(x, z, 60)
			case x%2 == 0:
				g.Set(x, z, 64)
			default:
				g.Set(x, z, 72)
			}
		}
	}

	data := g.Serialize()
	require.Equal(t, uint16(3), leUint16(data))

	packedLen := leUint32(data[2+3*2:])
	require.Equal(t, 1280, int(packedLen))
}

func TestTints_PackUnpackRGB(t *testing.T) {
	g := NewTints()
	SetRGB(g, 1, 1, 10, 20, 30)

	r, gr, b := GetRGB(g, 1, 1)
	require.Equal(t, uint8(10), r)
	require.Equal(t, uint8(20), gr)
	require.Equal(t, uint8(30), b)
}

func TestTints_RoundTrip(t *testing.T) {
	g := NewTints()
	for z := 0; z < Side; z++ {
		for x := 0; x < Side; x++ {
			SetRGB(g, x, z, uint8(x), uint8(z), 0)
		}
	}

	data := g.Serialize()
	g2, err := DeserializeTints(data)
	require.NoError(t, err)

	for z := 0; z < Side; z++ {
		for x := 0; x < Side; x++ {
			require.Equal(t, g.Get(x, z), g2.Get(x, z))
		}
	}
}

func TestGrid_RecompactsAtCapacity(t *testing.T) {
	g := NewHeights()
	// Fill the grid with 1024 distinct values, one per cell, which brings
	// the palette exactly to capacity without recompacting yet.
	i := 0
	for z := 0; z < Side; z++ {
		for x := 0; x < Side; x++ {
			g.Set(x, z, int16(i))
			i++
		}
	}
	require.Len(t, g.palette, Cells)

	// Cell (0,0) held the only instance of value 0. Overwriting it with a
	// novel value pushes the palette over capacity, which forces
	// recompaction (value 0 is no longer referenced anywhere) rather than
	// a fatal overflow.
	g.Set(0, 0, 9999)
	require.Equal(t, int16(9999), g.Get(0, 0))
	require.LessOrEqual(t, len(g.palette), Cells)

	// An untouched cell still reports its original distinct value.
	require.Equal(t, int16(1), g.Get(1, 0))
}

func leUint16(b []byte) uint16 { return uint16(b[0]) | uint16(b[1])<<8 }
func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
