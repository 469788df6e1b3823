// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"github.com/SoftbearStudios/cosmic/server/world"
	"time"
)

// Cloud registers the server and publishes its scoreboard. Offline does nothing.
// IncrementPlayerStatistic is called on the hub goroutine, the rest from another goroutine.
type Cloud interface {
	fmt.Stringer
	UpdateServer(players int) error
	IncrementPlayerStatistic()
	FlushStatistics() error
	UploadScoreboard(scoreboard []byte) error // takes encoded JSON
	UpdatePeriod() time.Duration
}

type Offline struct{}

func (offline Offline) String() string {
	return "offline"
}

func (offline Offline) UpdateServer(players int) error {
	return nil
}

func (offline Offline) IncrementPlayerStatistic() {}

func (offline Offline) FlushStatistics() error {
	return nil
}

func (offline Offline) UploadScoreboard(scoreboard []byte) error {
	return nil
}

func (offline Offline) UpdatePeriod() time.Duration {
	return time.Hour
}

// status is served by ServeIndex.
type status struct {
	Players int `json:"players"`
	Bots    int `json:"bots"`
	Orbs    int `json:"orbs"`
	Planets int `json:"planets"`
}

// Cloud updates the cloud and the status served over HTTP.
func (h *Hub) Cloud() {
	defer h.timeFunction("cloud", time.Now())

	s := status{
		Orbs:    h.world.OrbCount(),
		Planets: len(h.world.Planets()),
	}

	bots := make(map[world.PlayerID]bool)
	for client := h.clients.First; client != nil; client = client.Data().Next {
		if client.Bot() {
			s.Bots++
			bots[client.Data().SessionID] = true
		} else if h.world.Player(client.Data().SessionID) != nil {
			s.Players++
		}
	}

	statusJSON, err := json.Marshal(s)
	if err == nil {
		h.statusJSON.Store(statusJSON)
	} else {
		h.logger.Errorw("error marshaling status", "err", err)
	}

	// Bots don't belong on the public scoreboard.
	var scoreboard []world.ScoreboardEntry
	for _, entry := range h.world.Scoreboard() {
		if !bots[entry.ID] {
			scoreboard = append(scoreboard, entry)
		}
	}

	scoreboardJSON, err := json.Marshal(scoreboard)
	if err != nil {
		h.logger.Errorw("error marshaling scoreboard", "err", err)
		return
	}

	cloud := h.cloud
	players := s.Players
	logger := h.logger
	// The network is slow, don't block the hub.
	go func() {
		if err := cloud.FlushStatistics(); err != nil {
			logger.Warnw("error flushing statistics", "err", err)
		}
		if err := cloud.UploadScoreboard(scoreboardJSON); err != nil {
			logger.Warnw("error uploading scoreboard", "err", err)
		}
		if err := cloud.UpdateServer(players); err != nil {
			logger.Warnw("error updating server", "err", err)
		}
	}()
}

