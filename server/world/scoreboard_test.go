// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"math/rand"
	"sort"
	"strconv"
	"testing"
)

func BenchmarkWorld_Scoreboard(b *testing.B) {
	for n := 64; n <= 1024; n *= 4 {
		w := newTestWorld()
		r := rand.New(rand.NewSource(0))
		for i := 0; i < n; i++ {
			player := w.InitPlayer(PlayerID(strconv.Itoa(i)), "p"+strconv.Itoa(r.Intn(n)))
			player.Kills = r.Intn(10)
		}

		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				w.Scoreboard()
			}
		})
	}
}

func TestWorld_Scoreboard(t *testing.T) {
	w := newTestWorld()

	players := []struct {
		id    PlayerID
		name  string
		kills int
	}{
		{"A", "Bob", 3},
		{"B", "Amy", 3},
		{"C", "Zoe", 5},
	}
	for _, p := range players {
		w.InitPlayer(p.id, p.name).Kills = p.kills
	}

	scoreboard := w.Scoreboard()

	expected := []PlayerID{"C", "A", "B"}
	if len(scoreboard) != len(expected) {
		t.Fatalf("expected %d entries, got %d", len(expected), len(scoreboard))
	}
	for i, id := range expected {
		if scoreboard[i].ID != id {
			t.Errorf("expected %s at %d, got %s (%s)", id, i, scoreboard[i].ID, scoreboard[i].Name)
		}
	}

	if !scoreboard[0].Alive || scoreboard[0].Kills != 5 || scoreboard[0].Name != "Zoe" {
		t.Errorf("unexpected entry %+v", scoreboard[0])
	}
}

func TestWorld_Scoreboard_Collation(t *testing.T) {
	w := newTestWorld()

	// Locale collation ignores case at the first level, unlike byte order.
	names := []string{"alpha", "Bravo", "charlie", "Delta"}
	for i, name := range names {
		w.InitPlayer(PlayerID(strconv.Itoa(i)), name)
	}

	var got []string
	for _, entry := range w.Scoreboard() {
		got = append(got, entry.Name)
	}

	expected := []string{"Delta", "charlie", "Bravo", "alpha"}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, got)
		}
	}
}

func TestWorld_Scoreboard_Pure(t *testing.T) {
	w := newTestWorld()
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 50; i++ {
		player := w.InitPlayer(PlayerID(strconv.Itoa(i)), "")
		player.Kills = r.Intn(5)
		player.Deaths = r.Intn(5)
	}

	first := w.Scoreboard()
	second := w.Scoreboard()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("expected identical scoreboards, differ at %d", i)
		}
	}

	if !sort.SliceIsSorted(first, func(i, j int) bool {
		return first[i].Kills > first[j].Kills
	}) {
		t.Errorf("expected kills descending")
	}
}
