// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
)

type Vec3f struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

func (vec Vec3f) Mul(factor float32) Vec3f {
	vec.X *= factor
	vec.Y *= factor
	vec.Z *= factor
	return vec
}

func (vec Vec3f) Div(divisor float32) Vec3f {
	return vec.Mul(1.0 / divisor)
}

func (vec Vec3f) AddScaled(otherVec Vec3f, factor float32) Vec3f {
	vec.X += otherVec.X * factor
	vec.Y += otherVec.Y * factor
	vec.Z += otherVec.Z * factor
	return vec
}

func (vec Vec3f) Add(otherVec Vec3f) Vec3f {
	vec.X += otherVec.X
	vec.Y += otherVec.Y
	vec.Z += otherVec.Z
	return vec
}

func (vec Vec3f) Sub(otherVec Vec3f) Vec3f {
	vec.X -= otherVec.X
	vec.Y -= otherVec.Y
	vec.Z -= otherVec.Z
	return vec
}

func (vec Vec3f) Dot(otherVec Vec3f) float32 {
	return vec.X*otherVec.X + vec.Y*otherVec.Y + vec.Z*otherVec.Z
}

func (vec Vec3f) Distance(otherVec Vec3f) float32 {
	return math32.Sqrt(vec.DistanceSquared(otherVec))
}

func (vec Vec3f) DistanceSquared(otherVec Vec3f) float32 {
	x := vec.X - otherVec.X
	y := vec.Y - otherVec.Y
	z := vec.Z - otherVec.Z
	return x*x + y*y + z*z
}

func (vec Vec3f) Length() float32 {
	return math32.Sqrt(vec.LengthSquared())
}

func (vec Vec3f) LengthSquared() float32 {
	return vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z
}

// Norm returns the unit vector, or the zero vector if vec has no length.
func (vec Vec3f) Norm() Vec3f {
	length := vec.Length()
	if length == 0 {
		return Vec3f{}
	}
	return vec.Div(length)
}

// Finite returns false if any component is NaN or infinite (e.g. from a malformed client message).
func (vec Vec3f) Finite() bool {
	return finite(vec.X) && finite(vec.Y) && finite(vec.Z)
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
