// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"strconv"
	"strings"
	"time"
)

const (
	PlayerIDInvalid     = PlayerID("")
	PlayerNameLengthMax = 15
	PlayerMaxHP         = 100

	// PlayerRadius is the radius of the sphere a player occupies for hit detection.
	PlayerRadius = 2.5
)

// PlayerSpawn is where new players appear.
var PlayerSpawn = Vec3f{X: 0, Y: 5, Z: 0}

type (
	// Player is a pilot. Players are owned by a World and must only be modified by its methods.
	Player struct {
		PlayerData
		ID       PlayerID
		Position Vec3f
		Yaw      float32
		Pitch    float32
		HP       int
		MaxHP    int
		Alive    bool
		LastShot time.Time
	}

	// PlayerID is the session key a Player is registered under.
	PlayerID string

	PlayerData struct {
		Name   string `json:"name"`
		Kills  int    `json:"kills"`
		Deaths int    `json:"deaths"`
	}

	// PlayerView is a snapshot of a Player as sent to clients.
	PlayerView struct {
		Vec3f
		PlayerData
		ID    PlayerID `json:"id"`
		Yaw   float32  `json:"yaw"`
		Pitch float32  `json:"pitch"`
		HP    int      `json:"hp"`
		MaxHP int      `json:"maxHp"`
		Alive bool     `json:"isAlive"`
	}

	// Pose is a client reported position and orientation.
	Pose struct {
		Position Vec3f
		Yaw      float32
		Pitch    float32
	}
)

func newPlayer(id PlayerID, name string) *Player {
	return &Player{
		PlayerData: PlayerData{Name: name},
		ID:         id,
		Position:   PlayerSpawn,
		HP:         PlayerMaxHP,
		MaxHP:      PlayerMaxHP,
		Alive:      true,
	}
}

func (player *Player) View() PlayerView {
	return PlayerView{
		Vec3f:      player.Position,
		PlayerData: player.PlayerData,
		ID:         player.ID,
		Yaw:        player.Yaw,
		Pitch:      player.Pitch,
		HP:         player.HP,
		MaxHP:      player.MaxHP,
		Alive:      player.Alive,
	}
}

// Damage subtracts amount from HP and returns the resulting (possibly negative) HP.
// A player whose HP drops to zero or below dies.
func (player *Player) Damage(amount int) (hp int, died bool) {
	player.HP -= amount
	hp = player.HP
	if hp <= 0 {
		player.Die()
		died = true
	}
	return
}

// Die kills the player regardless of HP.
func (player *Player) Die() {
	player.HP = 0
	player.Alive = false
	player.Deaths++
}

// Heal adds amount to HP, up to MaxHP, and returns the new HP.
func (player *Player) Heal(amount int) int {
	player.HP += amount
	if player.HP > player.MaxHP {
		player.HP = player.MaxHP
	}
	return player.HP
}

// Revive brings a dead player back at position facing forward.
func (player *Player) Revive(position Vec3f) {
	player.Alive = true
	player.HP = player.MaxHP
	player.Position = position
	player.Yaw = 0
	player.Pitch = 0
}

// Cooling returns if the player fired too recently to fire again at now.
func (player *Player) Cooling(now time.Time) bool {
	return now.Sub(player.LastShot) < ShotCooldown
}

func (pose Pose) Finite() bool {
	return pose.Position.Finite() && finite(pose.Yaw) && finite(pose.Pitch)
}

// Formats player data as: name (kills/deaths)
func (data PlayerData) String() string {
	var builder strings.Builder
	kills := strconv.Itoa(data.Kills)
	deaths := strconv.Itoa(data.Deaths)
	builder.Grow(len(data.Name) + len(kills) + len(deaths) + 4)

	builder.WriteString(data.Name)
	builder.WriteString(" (")
	builder.WriteString(kills)
	builder.WriteByte('/')
	builder.WriteString(deaths)
	builder.WriteByte(')')

	return builder.String()
}
