// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
	"math/rand"
	"testing"
)

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 0.02
}

func approxVec(a, b Vec3f) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

func BenchmarkRay_IntersectSphere(b *testing.B) {
	const count = 1024
	centers := make([]Vec3f, count)
	for i := range centers {
		centers[i] = Vec3f{X: rand.Float32()*20 - 10, Y: rand.Float32()*20 - 10, Z: rand.Float32() * 100}
	}
	ray := Ray{Direction: Forward}
	b.ResetTimer()

	hits := 0
	for i := 0; i < b.N; i++ {
		if _, ok := ray.IntersectSphere(centers[i&(count-1)], PlayerRadius); ok {
			hits++
		}
	}
	_ = hits
}

func TestVec3f_Norm(t *testing.T) {
	tests := []struct {
		vec  Vec3f
		norm Vec3f
	}{
		{Vec3f{}, Vec3f{}},
		{Vec3f{X: 3}, Vec3f{X: 1}},
		{Vec3f{X: 3, Z: 4}, Vec3f{X: 0.6, Z: 0.8}},
		{Vec3f{Y: -2}, Vec3f{Y: -1}},
	}

	for _, test := range tests {
		if norm := test.vec.Norm(); !approxVec(norm, test.norm) {
			t.Errorf("expected %v.Norm(): %v, got %v", test.vec, test.norm, norm)
		}
	}
}

func TestVec3f_Finite(t *testing.T) {
	tests := []struct {
		vec    Vec3f
		finite bool
	}{
		{Vec3f{1, 2, 3}, true},
		{Vec3f{X: math32.NaN()}, false},
		{Vec3f{Y: math32.Inf(1)}, false},
		{Vec3f{Z: math32.Inf(-1)}, false},
	}

	for _, test := range tests {
		if finite := test.vec.Finite(); finite != test.finite {
			t.Errorf("expected %v.Finite(): %t, got %t", test.vec, test.finite, finite)
		}
	}
}

func TestQuat_Forward(t *testing.T) {
	const half = 0.70710678

	tests := []struct {
		name    string
		quat    Quat
		forward Vec3f
	}{
		{"identity", QuatIdentity, Vec3f{Z: 1}},
		{"yaw 90", Quat{Y: half, W: half}, Vec3f{X: 1}},
		{"yaw 180", Quat{Y: 1}, Vec3f{Z: -1}},
		{"pitch 90", Quat{X: half, W: half}, Vec3f{Y: -1}},
		{"denormalized", Quat{W: 3}, Vec3f{Z: 1}},
	}

	for _, test := range tests {
		if forward := test.quat.Forward(); !approxVec(forward, test.forward) {
			t.Errorf("%s: expected %v, got %v", test.name, test.forward, forward)
		}
	}
}

func TestQuat_Valid(t *testing.T) {
	tests := []struct {
		quat  Quat
		valid bool
	}{
		{QuatIdentity, true},
		{Quat{X: 1}, true},
		{Quat{}, false},
		{Quat{W: math32.NaN()}, false},
		{Quat{X: math32.Inf(1), W: 1}, false},
	}

	for _, test := range tests {
		if valid := test.quat.Valid(); valid != test.valid {
			t.Errorf("expected %v.Valid(): %t, got %t", test.quat, test.valid, valid)
		}
	}
}

func TestQuatLookingAt(t *testing.T) {
	directions := []Vec3f{
		{X: 1},
		{X: -3, Y: 2, Z: 1},
		{Y: 1},
		{Z: 5},
	}

	for _, direction := range directions {
		forward := QuatLookingAt(direction).Forward()
		if !approxVec(forward, direction.Norm()) {
			t.Errorf("expected looking at %v to face %v, got %v", direction, direction.Norm(), forward)
		}
	}
}

func TestRay_IntersectSphere(t *testing.T) {
	ray := Ray{Origin: Vec3f{Y: 5}, Direction: Forward}

	tests := []struct {
		name   string
		center Vec3f
		hit    bool
		point  Vec3f
	}{
		{"ahead", Vec3f{Y: 5, Z: 10}, true, Vec3f{Y: 5, Z: 7.5}},
		{"grazing", Vec3f{X: 2.5, Y: 5, Z: 10}, true, Vec3f{Y: 5, Z: 10}},
		{"beside", Vec3f{X: 3, Y: 5, Z: 10}, false, Vec3f{}},
		{"behind", Vec3f{Y: 5, Z: -10}, false, Vec3f{}},
		{"inside", Vec3f{Y: 5, Z: 1}, true, Vec3f{Y: 5, Z: 3.5}},
	}

	for _, test := range tests {
		point, hit := ray.IntersectSphere(test.center, PlayerRadius)
		if hit != test.hit {
			t.Errorf("%s: expected hit %t, got %t", test.name, test.hit, hit)
			continue
		}
		if hit && !approxVec(point, test.point) {
			t.Errorf("%s: expected point %v, got %v", test.name, test.point, point)
		}
	}
}

func TestSquare(t *testing.T) {
	for _, v := range []float32{0, 0.5, -3, 12} {
		if got := Square(v); got != v*v {
			t.Errorf("Square(%f) = %f", v, got)
		}
	}
	if Square(0.5) >= 0.5 {
		t.Error("square of a probability should not exceed it")
	}
}
