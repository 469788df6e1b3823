// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"golang.org/x/text/collate"
	"math/rand"
	"sort"
)

// WorldSize is the half extent of the playable area.
const WorldSize = 220

// World holds all shared game state: players, orbs and planets.
// It is not safe for concurrent use; the owner must serialize access.
type World struct {
	players map[PlayerID]*Player
	orbs    []Orb
	planets []Planet

	// Lazily created, not safe for concurrent use either.
	collator *collate.Collator
}

// New creates a world with generated planets and orbs.
func New(r *rand.Rand) *World {
	return &World{
		players: make(map[PlayerID]*Player),
		planets: GeneratePlanets(r, PlanetCount),
		orbs:    GenerateOrbs(r, OrbCount),
	}
}

// InitPlayer registers a new Player for id, replacing any existing one.
func (w *World) InitPlayer(id PlayerID, requestedName string) *Player {
	player := newPlayer(id, PlayerName(id, requestedName))
	w.players[id] = player
	return player
}

// RemovePlayer removes the Player for id and returns if it existed.
func (w *World) RemovePlayer(id PlayerID) bool {
	if _, ok := w.players[id]; !ok {
		return false
	}
	delete(w.players, id)
	return true
}

// Player gets a Player by id or nil if there isn't one.
// Cannot hold pointer after the caller yields control to other handlers.
func (w *World) Player(id PlayerID) *Player {
	return w.players[id]
}

// Move updates the pose of a living player. Returns false if the update was dropped.
func (w *World) Move(id PlayerID, pose Pose) (*Player, bool) {
	player := w.players[id]
	if player == nil || !player.Alive || !pose.Finite() {
		return nil, false
	}

	player.Position = pose.Position
	player.Yaw = pose.Yaw
	player.Pitch = pose.Pitch
	return player, true
}

func (w *World) PlayerCount() int {
	return len(w.players)
}

// ForPlayers iterates players in no particular order.
// Stops early and returns true if callback returns true.
func (w *World) ForPlayers(callback func(player *Player) (stop bool)) bool {
	for _, player := range w.players {
		if callback(player) {
			return true
		}
	}
	return false
}

// PlayerViews returns a snapshot of all players keyed by id.
func (w *World) PlayerViews() map[PlayerID]PlayerView {
	views := make(map[PlayerID]PlayerView, len(w.players))
	for id, player := range w.players {
		views[id] = player.View()
	}
	return views
}

// Orbs returns a copy of the current orbs.
func (w *World) Orbs() []Orb {
	return append([]Orb(nil), w.orbs...)
}

// Planets returns a copy of the planets.
func (w *World) Planets() []Planet {
	return append([]Planet(nil), w.planets...)
}

func (w *World) OrbCount() int {
	return len(w.orbs)
}

// Planet gets a planet by id or nil if there isn't one.
func (w *World) Planet(id PlanetID) *Planet {
	for i := range w.planets {
		if w.planets[i].ID == id {
			return &w.planets[i]
		}
	}
	return nil
}

// sortedPlayers returns players ordered by id so iteration is deterministic.
func (w *World) sortedPlayers() []*Player {
	players := make([]*Player, 0, len(w.players))
	for _, player := range w.players {
		players = append(players, player)
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].ID < players[j].ID
	})
	return players
}
