// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/cosmic/server/world"
)

type (
	// CurrentGameState is the snapshot sent to a client once it inits.
	CurrentGameState struct {
		Players map[world.PlayerID]world.PlayerView `json:"players"`
		Orbs    []world.Orb                         `json:"orbs"`
		Planets []world.Planet                      `json:"planets"`
		MyID    world.PlayerID                      `json:"myId"`
	}

	// GlobalDeathNotification is for the kill feed.
	GlobalDeathNotification struct {
		VictimName string `json:"victimName"`
		KillerName string `json:"killerName"`
	}

	OrbSpawned world.Orb

	PlayerDamaged struct {
		PlayerID             world.PlayerID `json:"playerId"`
		NewHP                int            `json:"newHp"` // may be negative
		AttackerID           world.PlayerID `json:"attackerId"`
		ShotImpactPosition   world.Vec3f    `json:"shotImpactPosition"`
		DamageSourcePosition world.Vec3f    `json:"damageSourcePosition"`
	}

	// PlayerDied has a custom jsoniter encoder for KillerID (null unless killed by a player).
	PlayerDied struct {
		PlayerID      world.PlayerID `json:"playerId"`
		KillerID      world.PlayerID `json:"killerId"`
		KillerName    string         `json:"killerName"`
		VictimName    string         `json:"victimName"`
		DeathPosition world.Vec3f    `json:"deathPosition"`
	}

	PlayerHealed struct {
		PlayerID world.PlayerID `json:"playerId"`
		NewHP    int            `json:"newHp"`
		OrbID    world.OrbID    `json:"orbId"`
	}

	PlayerJoined world.PlayerView

	// PlayerLeft is the id of the player that left.
	PlayerLeft world.PlayerID

	PlayerMoved world.PlayerView

	PlayerRespawned world.PlayerView

	// ProjectileFired is cosmetic; hits are resolved when the shot is fired.
	ProjectileFired struct {
		ShooterID     world.PlayerID `json:"shooterId"`
		ProjectileID  string         `json:"projectileId"`
		StartPosition world.Vec3f    `json:"startPosition"`
		Orientation   world.Quat     `json:"orientation"`
		Lifespan      float32        `json:"lifespan"` // seconds
	}

	// UpdateScoreboard is the full ranked scoreboard.
	UpdateScoreboard []world.ScoreboardEntry
)

func init() {
	registerOutbound(
		CurrentGameState{},
		GlobalDeathNotification{},
		OrbSpawned{},
		PlayerDamaged{},
		PlayerDied{},
		PlayerHealed{},
		PlayerJoined{},
		PlayerLeft(""),
		PlayerMoved{},
		PlayerRespawned{},
		ProjectileFired{},
		UpdateScoreboard(nil),
	)
}

func (CurrentGameState) outbound()        {}
func (GlobalDeathNotification) outbound() {}
func (OrbSpawned) outbound()              {}
func (PlayerDamaged) outbound()           {}
func (PlayerDied) outbound()              {}
func (PlayerHealed) outbound()            {}
func (PlayerJoined) outbound()            {}
func (PlayerLeft) outbound()              {}
func (PlayerMoved) outbound()             {}
func (PlayerRespawned) outbound()         {}
func (ProjectileFired) outbound()         {}
func (UpdateScoreboard) outbound()        {}
