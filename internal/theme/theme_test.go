package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	p, err := Derive("#FF0000")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", p.Base)
	assert.Equal(t, "rgba(255, 0, 0, 0.45)", p.Glow)

	_, err = Derive("not-a-color")
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	th := New()
	assert.Equal(t, DefaultBase, th.Palette().Base)

	var seen []Palette
	th.Subscribe(func(p Palette) { seen = append(seen, p) })

	require.NoError(t, th.Apply("#00ff00"))
	require.NoError(t, th.Apply("#00FF00"))
	assert.Error(t, th.Apply("#zz"))

	require.Len(t, seen, 1)
	assert.Equal(t, "#00ff00", th.Palette().Base)
	assert.Equal(t, "rgba(0, 255, 0, 0.45)", th.Palette().Glow)
}
