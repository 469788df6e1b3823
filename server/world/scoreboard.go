// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"sort"
)

// ScoreboardEntry is one row of the scoreboard.
type ScoreboardEntry struct {
	ID     PlayerID `json:"id"`
	Name   string   `json:"name"`
	Kills  int      `json:"kills"`
	Deaths int      `json:"deaths"`
	Alive  bool     `json:"isAlive"`
}

// Scoreboard ranks every player by kills, highest first. Equal kills are ordered by name,
// later names (in locale collation order) first, then by id.
// It never modifies players.
func (w *World) Scoreboard() []ScoreboardEntry {
	entries := make([]ScoreboardEntry, 0, len(w.players))
	for _, player := range w.players {
		entries = append(entries, ScoreboardEntry{
			ID:     player.ID,
			Name:   player.Name,
			Kills:  player.Kills,
			Deaths: player.Deaths,
			Alive:  player.Alive,
		})
	}

	if w.collator == nil {
		w.collator = collate.New(language.English)
	}
	collator := w.collator

	sort.Slice(entries, func(i, j int) bool {
		a, b := &entries[i], &entries[j]
		if a.Kills != b.Kills {
			return a.Kills > b.Kills
		}
		if c := collator.CompareString(a.Name, b.Name); c != 0 {
			return c > 0
		}
		return a.ID < b.ID
	})

	return entries
}
