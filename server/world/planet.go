// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"math/rand"
	"strconv"
)

const (
	PlanetCount     = 8
	PlanetRadiusMin = 25
	PlanetRadiusMax = 60

	// PlanetMargin is the minimum empty space between the surfaces of two planets.
	PlanetMargin = 30

	planetSpread   = 0.8 // of WorldSize, on every axis
	planetSafeZone = 0.4 // of WorldSize, kept clear around the origin
	planetAttempts = 50

	// PlanetCollisionFactor scales PlayerRadius when checking if a player crashed into a planet.
	PlanetCollisionFactor = 1.2
)

type (
	// Planet is a static obstacle. Planets never change after being generated.
	Planet struct {
		Vec3f
		Ring
		ID      PlanetID `json:"id"`
		Radius  float32  `json:"radius"`
		Color   int      `json:"color"`
		HasRing bool     `json:"hasRing"`
	}

	// Ring is a particle ring around a Planet. Zero unless Planet.HasRing.
	Ring struct {
		MinRadius float32 `json:"ringMinRadius,omitempty"`
		MaxRadius float32 `json:"ringMaxRadius,omitempty"`
		Thickness float32 `json:"ringThickness,omitempty"`
	}

	PlanetID string
)

// Overlaps returns if the planets are closer than PlanetMargin.
func (planet *Planet) Overlaps(other *Planet) bool {
	minDistance := planet.Radius + other.Radius + PlanetMargin
	return planet.DistanceSquared(other.Vec3f) < minDistance*minDistance
}

// Collides returns if a player at position has crashed into the planet.
func (planet *Planet) Collides(position Vec3f) bool {
	return planet.Distance(position) < planet.Radius+PlayerRadius*PlanetCollisionFactor
}

// GeneratePlanets places count non-overlapping planets outside the central safe zone.
// A planet that cannot be placed after planetAttempts is put at the origin.
// Exactly one planet gets a Ring.
func GeneratePlanets(r *rand.Rand, count int) []Planet {
	if count <= 0 {
		return nil
	}

	palette := NewPalette(r.Int63())
	ringIndex := r.Intn(count)
	planets := make([]Planet, 0, count)

	for i := 0; i < count; i++ {
		planet := Planet{
			ID:     PlanetID("planet-" + strconv.Itoa(i)),
			Radius: round2(randRange(r, PlanetRadiusMin, PlanetRadiusMax)),
		}

		placed := false
		for attempt := 0; attempt < planetAttempts && !placed; attempt++ {
			planet.Vec3f = Vec3f{
				X: round2(randSigned(r, WorldSize*planetSpread)),
				Y: round2(randSigned(r, WorldSize*planetSpread)),
				Z: round2(randSigned(r, WorldSize*planetSpread)),
			}

			if planet.LengthSquared() < Square(WorldSize*planetSafeZone) {
				continue
			}

			placed = true
			for j := range planets {
				if planet.Overlaps(&planets[j]) {
					placed = false
					break
				}
			}
		}

		if !placed {
			// Don't fail world generation because of one crowded planet
			planet.Vec3f = Vec3f{}
		}

		planet.Color = palette.Color(planet.Vec3f)

		if i == ringIndex {
			planet.HasRing = true
			planet.Ring.MinRadius = planet.Radius + randRange(r, 5, 10)
			planet.Ring.MaxRadius = planet.Ring.MinRadius + randRange(r, 10, 25)
			planet.Ring.Thickness = randRange(r, 1, 3)
		}

		planets = append(planets, planet)
	}

	return planets
}
