// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/google/uuid"
	"math/rand"
)

const (
	OrbCount = 8
	// OrbHeal is how much HP collecting an orb restores.
	OrbHeal = 25

	orbSpread    = 0.9  // of WorldSize, horizontally
	orbHeightMin = 5    // absolute
	orbHeightMax = 0.75 // of WorldSize
)

type (
	// Orb is a collectible that heals.
	Orb struct {
		Vec3f
		ID OrbID `json:"id"`
	}

	OrbID string
)

// SpawnOrb creates an Orb at a random position with a fresh OrbID.
// It does not add the Orb to any World.
func SpawnOrb(r *rand.Rand) Orb {
	return Orb{
		ID: OrbID("orb-" + uuid.NewString()),
		Vec3f: Vec3f{
			X: randSigned(r, WorldSize*orbSpread),
			Y: randRange(r, orbHeightMin, WorldSize*orbHeightMax),
			Z: randSigned(r, WorldSize*orbSpread),
		},
	}
}

// GenerateOrbs spawns count Orbs.
func GenerateOrbs(r *rand.Rand, count int) []Orb {
	orbs := make([]Orb, count)
	for i := range orbs {
		orbs[i] = SpawnOrb(r)
	}
	return orbs
}
