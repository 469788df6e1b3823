// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Quat is an orientation as sent by clients (three.js serializes its private fields).
type Quat struct {
	X float32 `json:"_x"`
	Y float32 `json:"_y"`
	Z float32 `json:"_z"`
	W float32 `json:"_w"`
}

// Forward is the direction a pilot faces before being rotated.
var Forward = Vec3f{Z: 1}

// QuatIdentity doesn't rotate.
var QuatIdentity = Quat{W: 1}

func QuatFromMgl(q mgl32.Quat) Quat {
	return Quat{X: q.V[0], Y: q.V[1], Z: q.V[2], W: q.W}
}

// QuatLookingAt returns the orientation whose Forward points along direction.
func QuatLookingAt(direction Vec3f) Quat {
	return QuatFromMgl(mgl32.QuatBetweenVectors(Forward.mgl(), direction.Norm().mgl()))
}

func (quat Quat) mgl() mgl32.Quat {
	return mgl32.Quat{W: quat.W, V: mgl32.Vec3{quat.X, quat.Y, quat.Z}}
}

// Valid returns whether quat can be normalized into a rotation.
func (quat Quat) Valid() bool {
	return finite(quat.X) && finite(quat.Y) && finite(quat.Z) && finite(quat.W) && quat.mgl().Len() > 1e-6
}

// Rotate rotates vec by quat (normalized first, so slightly denormalized client input is tolerated).
func (quat Quat) Rotate(vec Vec3f) Vec3f {
	return vec3fFromMgl(quat.mgl().Normalize().Rotate(vec.mgl()))
}

// Forward returns the unit direction quat is facing.
func (quat Quat) Forward() Vec3f {
	return quat.Rotate(Forward).Norm()
}

func (vec Vec3f) mgl() mgl32.Vec3 {
	return mgl32.Vec3{vec.X, vec.Y, vec.Z}
}

func vec3fFromMgl(v mgl32.Vec3) Vec3f {
	return Vec3f{X: v[0], Y: v[1], Z: v[2]}
}
