// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"math/rand"
	"time"
)

const (
	// RespawnDelay is how long a player stays dead.
	RespawnDelay = 3 * time.Second

	// RespawnSpread is the half extent of the square, centered on the origin, players respawn in.
	RespawnSpread = 25
	RespawnHeight = 5
)

// HitPlanet kills a living player that a client reports crashed into planetID, if the
// player's authoritative position agrees.
func (w *World) HitPlanet(id PlayerID, planetID PlanetID) (*Player, bool) {
	player := w.players[id]
	if player == nil || !player.Alive {
		return nil, false
	}

	planet := w.Planet(planetID)
	if planet == nil || !planet.Collides(player.Position) {
		return nil, false
	}

	player.Die()
	return player, true
}

// CollectOrb removes orbID, heals the player and spawns a replacement so the orb count
// never changes.
func (w *World) CollectOrb(id PlayerID, orbID OrbID, r *rand.Rand) (player *Player, spawned Orb, ok bool) {
	player = w.players[id]
	if player == nil || !player.Alive {
		return nil, Orb{}, false
	}

	index := -1
	for i := range w.orbs {
		if w.orbs[i].ID == orbID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, Orb{}, false
	}

	// Swap remove
	end := len(w.orbs) - 1
	w.orbs[index] = w.orbs[end]
	w.orbs = w.orbs[:end]

	player.Heal(OrbHeal)

	spawned = SpawnOrb(r)
	w.orbs = append(w.orbs, spawned)
	return player, spawned, true
}

// Respawn revives a dead player near the origin. Players that no longer exist or are
// already alive are left alone.
func (w *World) Respawn(id PlayerID, r *rand.Rand) (*Player, bool) {
	player := w.players[id]
	if player == nil || player.Alive {
		return nil, false
	}

	player.Revive(Vec3f{
		X: randSigned(r, RespawnSpread),
		Y: RespawnHeight,
		Z: randSigned(r, RespawnSpread),
	})
	return player, true
}
