package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxforge/voxstore/palette2d"
)

func TestBlockChunkData_RoundTrip(t *testing.T) {
	heights := palette2d.NewHeights()
	tints := palette2d.NewTints()
	for z := 0; z < palette2d.Side; z++ {
		for x := 0; x < palette2d.Side; x++ {
			heights.Set(x, z, int16(64+x%4))
			palette2d.SetRGB(tints, x, z, uint8(x), uint8(z), 128)
		}
	}

	d := BlockChunkData{
		NeedsPhysics: true,
		Heights:      heights,
		Tints:        tints,
	}

	data := SerializeBlockChunkData(d)
	require.Equal(t, byte(1), data[0])

	got, err := DeserializeBlockChunkData(data)
	require.NoError(t, err)
	require.True(t, got.NeedsPhysics)

	for z := 0; z < palette2d.Side; z++ {
		for x := 0; x < palette2d.Side; x++ {
			require.Equal(t, heights.Get(x, z), got.Heights.Get(x, z))
			require.Equal(t, tints.Get(x, z), got.Tints.Get(x, z))
		}
	}
}
