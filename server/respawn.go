// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/cosmic/server/world"
	"time"
)

type (
	// respawnScheduler keeps at most one pending respawn per player. Timers never touch
	// the world; they deliver due tasks to the hub goroutine via due.
	respawnScheduler struct {
		delay   time.Duration
		pending map[world.PlayerID]*respawnTask
		due     chan *respawnTask
		stop    chan struct{}
	}

	respawnTask struct {
		id    world.PlayerID
		timer *time.Timer
	}
)

func newRespawnScheduler(delay time.Duration) *respawnScheduler {
	return &respawnScheduler{
		delay:   delay,
		pending: make(map[world.PlayerID]*respawnTask),
		due:     make(chan *respawnTask, 16),
		stop:    make(chan struct{}),
	}
}

// Schedule respawns id after the delay. Returns false if a respawn is already pending.
// Only call on the hub goroutine.
func (s *respawnScheduler) Schedule(id world.PlayerID) bool {
	if _, ok := s.pending[id]; ok {
		return false
	}

	task := &respawnTask{id: id}
	task.timer = time.AfterFunc(s.delay, func() {
		select {
		case s.due <- task:
		case <-s.stop:
		}
	})
	s.pending[id] = task
	return true
}

// Cancel drops the pending respawn of id, if any.
// Only call on the hub goroutine.
func (s *respawnScheduler) Cancel(id world.PlayerID) {
	if task, ok := s.pending[id]; ok {
		task.timer.Stop()
		delete(s.pending, id)
	}
}

// Claim returns if task is still the current one and should be carried out.
// A task that was cancelled while its delivery was in flight is stale.
func (s *respawnScheduler) Claim(task *respawnTask) bool {
	if s.pending[task.id] != task {
		return false
	}
	delete(s.pending, task.id)
	return true
}

// Stop cancels everything. The scheduler cannot be used afterwards.
func (s *respawnScheduler) Stop() {
	for id := range s.pending {
		s.Cancel(id)
	}
	close(s.stop)
}
