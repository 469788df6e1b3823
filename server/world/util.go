// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"math"
	"math/rand"
)

// Square returns a * a.
func Square(a float32) float32 {
	return a * a
}

// randRange returns a uniform float in [low, high).
func randRange(r *rand.Rand, low, high float32) float32 {
	return low + r.Float32()*(high-low)
}

// randSigned returns a uniform float in [-magnitude, magnitude).
func randSigned(r *rand.Rand, magnitude float32) float32 {
	return (r.Float32()*2 - 1) * magnitude
}

// round2 rounds to 2 decimal places, which is all clients display or need.
func round2(f float32) float32 {
	return float32(math.Round(float64(f)*100) / 100)
}
