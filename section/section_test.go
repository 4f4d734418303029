package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxforge/voxstore/format"
)

func fillHalfAirHalfStone(s *Section) {
	for y := 0; y < Side; y++ {
		for z := 0; z < Side; z++ {
			for x := 0; x < Side; x++ {
				if (x+y+z)%2 == 0 {
					s.Insert(x, y, z, AirName)
				} else {
					s.Insert(x, y, z, "Stone")
				}
			}
		}
	}
}

func TestSection_RoundTrip_HalfAirHalfStone(t *testing.T) {
	s := New()
	fillHalfAirHalfStone(s)

	require.Equal(t, format.TagHalfByte, s.Tag)
	require.Len(t, s.voxels, 16384)

	data := s.Serialize()
	s2, err := Deserialize(data)
	require.NoError(t, err)

	for y := 0; y < Side; y++ {
		for z := 0; z < Side; z++ {
			for x := 0; x < Side; x++ {
				require.Equal(t, s.Lookup(x, y, z), s2.Lookup(x, y, z))
			}
		}
	}
}

func TestSection_PromotesOnInsert(t *testing.T) {
	s := New()
	names := make([]string, 0, 17)
	for i := 0; i < 17; i++ {
		names = append(names, namedBlock(i))
	}

	// Insert 17 distinct names at distinct positions. Air already holds
	// internal ID 0, so the 16th insert (the 17th distinct name) must
	// promote the section from HalfByte to Byte.
	for i, name := range names {
		s.Insert(i, 0, 0, name)
	}

	require.Equal(t, format.TagByte, s.Tag)
	require.Len(t, s.voxels, 32768)

	for i, name := range names {
		require.Equal(t, name, s.Lookup(i, 0, 0))
	}
}

func TestSection_EmptyTag_AllAir(t *testing.T) {
	s := New()
	require.Equal(t, format.TagEmpty, s.Tag)
	for _, p := range [][3]int{{0, 0, 0}, {31, 31, 31}, {5, 9, 13}} {
		require.Equal(t, AirName, s.Lookup(p[0], p[1], p[2]))
	}

	data := s.Serialize()
	s2, err := Deserialize(data)
	require.NoError(t, err)
	require.Equal(t, format.TagEmpty, s2.Tag)
	require.Equal(t, AirName, s2.Lookup(0, 0, 0))
}

func TestSection_CompactDemotesAndDrops(t *testing.T) {
	s := New()
	names := make([]string, 0, 17)
	for i := 0; i < 17; i++ {
		names = append(names, namedBlock(i))
	}
	for i, name := range names {
		s.Insert(i%Side, 0, 0, name)
	}
	require.Equal(t, format.TagByte, s.Tag)

	// Overwrite every position with just two distinct names; compaction
	// should drop the now-unreferenced entries and demote back to HalfByte.
	for y := 0; y < Side; y++ {
		for z := 0; z < Side; z++ {
			for x := 0; x < Side; x++ {
				if (x+z)%2 == 0 {
					s.Insert(x, y, z, AirName)
				} else {
					s.Insert(x, y, z, "Stone")
				}
			}
		}
	}

	s.Compact()
	require.Equal(t, format.TagHalfByte, s.Tag)
	require.LessOrEqual(t, s.PaletteSize(), 2)
}

func TestSection_CompactToEmpty(t *testing.T) {
	s := New()
	fillHalfAirHalfStone(s)

	for y := 0; y < Side; y++ {
		for z := 0; z < Side; z++ {
			for x := 0; x < Side; x++ {
				s.Insert(x, y, z, AirName)
			}
		}
	}

	s.Compact()
	require.Equal(t, format.TagEmpty, s.Tag)
	require.Equal(t, AirName, s.Lookup(3, 3, 3))
}

func TestFlatIndex_Addressing(t *testing.T) {
	require.Equal(t, 0, FlatIndex(0, 0, 0))
	require.Equal(t, 1, FlatIndex(1, 0, 0))
	require.Equal(t, 32, FlatIndex(0, 0, 1))
	require.Equal(t, 1024, FlatIndex(0, 1, 0))
	require.Equal(t, (1<<10)|(2<<5)|3, FlatIndex(3, 1, 2))
}

func namedBlock(i int) string {
	letters := "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	return "Block" + string(letters[i%len(letters)]) + string(rune('0'+i/len(letters)))
}
