// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/cosmic/server/world"
)

// Make sure to register in init function
type (
	// InvalidInbound means invalid message type from client (possibly out of date).
	// NOTE: Do not register, otherwise client could send type "invalidInbound"
	InvalidInbound struct {
		messageType messageType
	}

	// OrbCollected claims the orb with this id.
	OrbCollected world.OrbID

	// PlayerHitPlanet reports crashing into a planet.
	PlayerHitPlanet struct {
		PlanetID world.PlanetID `json:"planetId"`
	}

	// PlayerInit joins the game, or rejoins with a clean slate.
	PlayerInit struct {
		Name string `json:"name"`
	}

	// PlayerShoot fires from StartPosition in the direction of Orientation.
	PlayerShoot struct {
		StartPosition world.Vec3f `json:"startPosition"`
		Orientation   world.Quat  `json:"orientation"`
	}

	// PlayerStateUpdate moves the player.
	PlayerStateUpdate struct {
		world.Vec3f
		Yaw   float32 `json:"yaw"`
		Pitch float32 `json:"pitch"`
	}
)

func init() {
	registerInbound(
		OrbCollected(""),
		PlayerHitPlanet{},
		PlayerInit{},
		PlayerShoot{},
		PlayerStateUpdate{},
	)
}

func (data OrbCollected) Inbound(h *Hub, client Client) {
	h.collectOrb(client, world.OrbID(data))
}

func (data PlayerHitPlanet) Inbound(h *Hub, client Client) {
	h.hitPlanet(client, data.PlanetID)
}

func (data PlayerInit) Inbound(h *Hub, client Client) {
	h.initPlayer(client, data.Name)
}

func (data PlayerShoot) Inbound(h *Hub, client Client) {
	h.shoot(client, data.StartPosition, data.Orientation)
}

func (data PlayerStateUpdate) Inbound(h *Hub, client Client) {
	h.move(client, world.Pose{
		Position: data.Vec3f,
		Yaw:      data.Yaw,
		Pitch:    data.Pitch,
	})
}

func (data InvalidInbound) Inbound(h *Hub, _ Client) {
	h.logger.Debugw("invalid message type", "type", data.messageType)
}
