package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaletteShadeIdentityMapping(t *testing.T) {
	p := Palette(0b11_10_01_00) // index n maps to shade n

	assert.Equal(t, byte(255), p.Shade(0))
	assert.Equal(t, byte(192), p.Shade(1))
	assert.Equal(t, byte(96), p.Shade(2))
	assert.Equal(t, byte(0), p.Shade(3))
}

func TestPaletteShadeRemapping(t *testing.T) {
	p := Palette(0b00_01_10_11) // color index 0 remapped to the darkest shade

	assert.Equal(t, byte(0), p.Shade(0))
	assert.Equal(t, byte(96), p.Shade(1))
	assert.Equal(t, byte(192), p.Shade(2))
	assert.Equal(t, byte(255), p.Shade(3))
}
