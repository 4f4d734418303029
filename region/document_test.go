package region

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxforge/voxstore/section"
)

func TestSectionDocument_RoundTrip(t *testing.T) {
	s := section.New()
	s.Insert(0, 0, 0, "Stone")

	doc := NewSectionDocument(s)
	require.NotEmpty(t, doc.Block)

	decoded, err := doc.DecodeSection()
	require.NoError(t, err)
	require.Equal(t, "Stone", decoded.Lookup(0, 0, 0))
}
