// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"time"
)

const (
	ShotCooldown = 150 * time.Millisecond
	ShotDamage   = 15
	ShotRange    = 200

	// ProjectileLifespan is how long clients render a projectile. The server never simulates it.
	ProjectileLifespan = 1500 * time.Millisecond
)

// Shot is the result of an accepted Fire.
type Shot struct {
	Shooter *Player
	Origin  Vec3f
	// Target is nil if nothing was hit.
	Target *Player
	// Impact is where the ray entered Target.
	Impact Vec3f
	// HP is Target's HP right after the damage was subtracted, before clamping.
	HP     int
	Killed bool
}

// Hit returns if the shot hit a player.
func (shot *Shot) Hit() bool {
	return shot.Target != nil
}

// Fire resolves a hit-scan shot from origin along orientation at now.
// Returns false if the shot was rejected (missing or dead shooter, cooldown, invalid input).
func (w *World) Fire(id PlayerID, origin Vec3f, orientation Quat, now time.Time) (Shot, bool) {
	shooter := w.players[id]
	if shooter == nil || !shooter.Alive || shooter.Cooling(now) || !origin.Finite() || !orientation.Valid() {
		return Shot{}, false
	}
	shooter.LastShot = now

	shot := Shot{Shooter: shooter, Origin: origin}
	ray := Ray{Origin: origin, Direction: orientation.Forward()}

	// Ranged from the shooter's authoritative position, not the client supplied origin.
	bestDistanceSquared := float32(ShotRange * ShotRange)
	for _, target := range w.sortedPlayers() {
		if target == shooter || !target.Alive {
			continue
		}

		impact, ok := ray.IntersectSphere(target.Position, PlayerRadius)
		if !ok {
			continue
		}

		distanceSquared := shooter.Position.DistanceSquared(impact)
		if distanceSquared > bestDistanceSquared || (shot.Target != nil && distanceSquared == bestDistanceSquared) {
			continue
		}

		bestDistanceSquared = distanceSquared
		shot.Target = target
		shot.Impact = impact
	}

	if shot.Target != nil {
		shot.HP, shot.Killed = shot.Target.Damage(ShotDamage)
		if shot.Killed {
			shooter.Kills++
		}
	}

	return shot, true
}
