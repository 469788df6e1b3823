// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"math/rand"
	"reflect"
	"testing"
)

func BenchmarkGeneratePlanets(b *testing.B) {
	r := rand.New(rand.NewSource(0))
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		GeneratePlanets(r, PlanetCount)
	}
}

func TestGeneratePlanets(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		planets := GeneratePlanets(rand.New(rand.NewSource(seed)), PlanetCount)
		if len(planets) != PlanetCount {
			t.Fatalf("seed %d: expected %d planets, got %d", seed, PlanetCount, len(planets))
		}

		rings := 0
		ids := make(map[PlanetID]bool)
		for i := range planets {
			planet := &planets[i]

			if ids[planet.ID] {
				t.Errorf("seed %d: duplicate id %s", seed, planet.ID)
			}
			ids[planet.ID] = true

			if planet.Radius < PlanetRadiusMin || planet.Radius > PlanetRadiusMax {
				t.Errorf("seed %d: radius %f out of range", seed, planet.Radius)
			}
			if planet.Color < 0 || planet.Color > 0xffffff {
				t.Errorf("seed %d: color %x out of range", seed, planet.Color)
			}

			if planet.HasRing {
				rings++
				if planet.Ring.MinRadius < planet.Radius+5 || planet.Ring.MinRadius > planet.Radius+10 {
					t.Errorf("seed %d: ring min radius %f invalid for radius %f", seed, planet.Ring.MinRadius, planet.Radius)
				}
				if width := planet.Ring.MaxRadius - planet.Ring.MinRadius; width < 10 || width > 25 {
					t.Errorf("seed %d: ring width %f invalid", seed, width)
				}
				if planet.Ring.Thickness < 1 || planet.Ring.Thickness > 3 {
					t.Errorf("seed %d: ring thickness %f invalid", seed, planet.Ring.Thickness)
				}
			} else if planet.Ring != (Ring{}) {
				t.Errorf("seed %d: planet without ring has ring %v", seed, planet.Ring)
			}

			// Planets that fell back to the origin are exempt.
			if planet.Vec3f == (Vec3f{}) {
				continue
			}

			if planet.Length() < WorldSize*planetSafeZone-0.01 {
				t.Errorf("seed %d: planet %s inside safe zone at %v", seed, planet.ID, planet.Vec3f)
			}

			for j := 0; j < i; j++ {
				other := &planets[j]
				if other.Vec3f == (Vec3f{}) {
					continue
				}
				// Rounding positions to 2 decimals can shave a tiny amount off the margin.
				if planet.Distance(other.Vec3f) < planet.Radius+other.Radius+PlanetMargin-0.02 {
					t.Errorf("seed %d: planets %s and %s overlap", seed, planet.ID, other.ID)
				}
			}
		}

		if rings != 1 {
			t.Errorf("seed %d: expected exactly 1 ring, got %d", seed, rings)
		}
	}
}

func TestGeneratePlanets_Deterministic(t *testing.T) {
	a := GeneratePlanets(rand.New(rand.NewSource(42)), PlanetCount)
	b := GeneratePlanets(rand.New(rand.NewSource(42)), PlanetCount)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected same planets for same seed")
	}
}

func TestGeneratePlanets_Crowded(t *testing.T) {
	// Far more planets than fit, so some must fall back to the origin.
	planets := GeneratePlanets(rand.New(rand.NewSource(1)), 64)

	fallbacks := 0
	for _, planet := range planets {
		if planet.Vec3f == (Vec3f{}) {
			fallbacks++
		}
	}

	if len(planets) != 64 {
		t.Errorf("expected 64 planets, got %d", len(planets))
	}
	if fallbacks == 0 {
		t.Errorf("expected some planets at the origin")
	}
}

func TestGenerateOrbs(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	orbs := GenerateOrbs(r, 1000)

	ids := make(map[OrbID]bool)
	for _, orb := range orbs {
		if ids[orb.ID] {
			t.Errorf("duplicate orb id %s", orb.ID)
		}
		ids[orb.ID] = true

		horizontal := float32(WorldSize * orbSpread)
		if orb.X < -horizontal || orb.X > horizontal || orb.Z < -horizontal || orb.Z > horizontal {
			t.Errorf("orb %s out of horizontal bounds at %v", orb.ID, orb.Vec3f)
		}
		if orb.Y < orbHeightMin || orb.Y > WorldSize*orbHeightMax {
			t.Errorf("orb %s out of vertical bounds at %v", orb.ID, orb.Vec3f)
		}
	}
}
