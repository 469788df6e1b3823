// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/cosmic/server/world"
	"runtime"
	"sort"
	"time"
)

// Debug logs debugging info and appends stats to the stats log, if any.
func (h *Hub) Debug() {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	var (
		botCount int
		alive    int
		players  []string
	)

	bots := make(map[world.PlayerID]bool)
	for client := h.clients.First; client != nil; client = client.Data().Next {
		if client.Bot() {
			botCount++
			bots[client.Data().SessionID] = true
		}
	}

	h.world.ForPlayers(func(player *world.Player) bool {
		if player.Alive {
			alive++
		}
		if !bots[player.ID] {
			players = append(players, player.String())
		}
		return false
	})
	sort.Strings(players)

	// Function benchmarks
	var totalDuration time.Duration
	benches := make([]interface{}, 0, len(h.funcBenches)*2)
	for i := range h.funcBenches {
		bench := &h.funcBenches[i]

		duration := bench.reset()
		totalDuration += duration

		benches = append(benches, bench.name, duration)
	}

	h.logger.Debugw("debug",
		"cloud", h.cloud.String(),
		"heapMB", stats.HeapInuse/1e6,
		"nextGCMB", stats.NextGC/1e6,
		"clients", h.clients.Len,
		"bots", botCount,
		"alive", alive,
		"orbs", h.world.OrbCount(),
		"players", players,
	)
	h.logger.Debugw("benches", append(benches, "total", totalDuration)...)

	if h.statsLog != "" {
		err := AppendLog(h.statsLog, []interface{}{
			unixMillis(),
			len(players),
			botCount,
			alive,
			totalDuration.Microseconds(),
		})
		if err != nil {
			h.logger.Warnw("could not append stats", "file", h.statsLog, "err", err)
		}
	}
}

// funcBench is a benchmark of a core function.
type funcBench struct {
	name     string
	duration time.Duration
	runs     int
}

// reset resets the benchmark and returns the average duration
func (bench *funcBench) reset() time.Duration {
	if bench.runs == 0 {
		return 0
	}
	average := bench.duration / time.Duration(bench.runs)
	bench.duration = 0
	bench.runs = 0
	return average
}

// timeFunction times a function.
// defer timeFunction("name", time.Now())
func (h *Hub) timeFunction(name string, start time.Time) {
	end := time.Now()

	var bench *funcBench
	for i := range h.funcBenches {
		b := &h.funcBenches[i]
		if name == b.name {
			bench = b
			break
		}
	}

	if bench == nil {
		h.funcBenches = append(h.funcBenches, funcBench{name: name})
		bench = &h.funcBenches[len(h.funcBenches)-1]
	}

	bench.duration += end.Sub(start)
	bench.runs++
}
