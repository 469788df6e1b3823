// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/aquilax/go-perlin"
	"github.com/lucasb-eyer/go-colorful"
	"math"
)

const (
	paletteFrequency = 0.004
	paletteHueSpread = 540 // degrees; noise rarely covers its full range
)

// Palette colors planets by sampling noise at their positions, so planets near each other
// get similar hues.
type Palette struct {
	hue       *perlin.Perlin
	lightness *perlin.Perlin
	offset    float64
}

// NewPalette creates a Palette from a seed.
func NewPalette(seed int64) *Palette {
	return &Palette{
		hue:       perlin.NewPerlin(2, 2, 3, seed),
		lightness: perlin.NewPerlin(1.5, 2, 2, seed+1),
		offset:    float64(seed%360+360) / 2,
	}
}

// Color returns a 24-bit RGB color for position.
func (palette *Palette) Color(position Vec3f) int {
	x := float64(position.X) * paletteFrequency
	y := float64(position.Y) * paletteFrequency
	z := float64(position.Z) * paletteFrequency

	hue := math.Mod(palette.offset+(palette.hue.Noise3D(x, y, z)+1)*paletteHueSpread, 360)
	if hue < 0 {
		hue += 360
	}
	lightness := 0.5 + clamp64(palette.lightness.Noise3D(z, x, y), -0.5, 0.5)*0.3

	red, green, blue := colorful.Hsl(hue, 0.65, lightness).Clamped().RGB255()
	return int(red)<<16 | int(green)<<8 | int(blue)
}

func clamp64(val, minimum, maximum float64) float64 {
	return math.Min(math.Max(val, minimum), maximum)
}
