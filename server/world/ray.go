// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
)

// Ray is a half-line. Direction must be normalized.
type Ray struct {
	Origin    Vec3f
	Direction Vec3f
}

// At returns the point t units along the ray.
func (ray Ray) At(t float32) Vec3f {
	return ray.Origin.AddScaled(ray.Direction, t)
}

// IntersectSphere returns the first point where the ray enters the sphere. If the origin is already
// inside the sphere, the exit point is returned. Spheres behind the origin are never hit.
func (ray Ray) IntersectSphere(center Vec3f, radius float32) (Vec3f, bool) {
	toCenter := center.Sub(ray.Origin)
	tca := toCenter.Dot(ray.Direction)
	d2 := toCenter.LengthSquared() - tca*tca
	r2 := radius * radius
	if d2 > r2 {
		return Vec3f{}, false
	}

	thc := math32.Sqrt(r2 - d2)
	t0 := tca - thc
	t1 := tca + thc

	// Both intersections behind
	if t1 < 0 {
		return Vec3f{}, false
	}

	// Inside the sphere
	if t0 < 0 {
		return ray.At(t1), true
	}

	return ray.At(t0), true
}
