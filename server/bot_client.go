// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/cosmic/server/world"
	"github.com/chewxy/math32"
	"io"
	"time"
)

const (
	botSpeed      = 30 // per second
	botReach      = 2  // distance to collect an orb
	botOrbRange   = 120
	botFightRange = world.ShotRange * 0.6
)

type (
	// BotClient plays through the same messages as a SocketClient.
	// Everything it knows about the world comes from the messages it is sent.
	BotClient struct {
		ClientData
		name        string
		aggression  float32
		caution     float32 // probability of steering around a planet instead of crashing
		initialized bool
		alive       bool
		destroying  bool
		position    world.Vec3f
		waypoint    world.Vec3f
		players     map[world.PlayerID]world.PlayerView
		orbs        map[world.OrbID]world.Vec3f
		planets     []world.Planet
	}

	// Target is a position that is closest.
	Target struct {
		Position        world.Vec3f
		distanceSquared float32
		found           bool
	}
)

func NewBotClient() *BotClient {
	return &BotClient{
		players: make(map[world.PlayerID]world.PlayerView),
		orbs:    make(map[world.OrbID]world.Vec3f),
	}
}

// Bots tops up the clients with bots and lets every bot think.
func (h *Hub) Bots() {
	defer h.timeFunction("bots", time.Now())

	// Add as many as fit in the channel but don't block because it would deadlock
fill:
	for i := h.clients.Len + len(h.register) - len(h.unregister); i < h.minClients; i++ {
		select {
		case h.register <- NewBotClient():
		default:
			break fill
		}
	}

	for client := h.clients.First; client != nil; client = client.Data().Next {
		if bot, ok := client.(*BotClient); ok {
			bot.think()
		}
	}
}

func (bot *BotClient) Bot() bool {
	return true
}

func (bot *BotClient) Close() {}

func (bot *BotClient) Data() *ClientData {
	return &bot.ClientData
}

func (bot *BotClient) Destroy() {
	if bot.destroying {
		return // In case goroutine hasn't run yet
	}

	bot.destroying = true
	hub := bot.Hub

	// Needs to go through always.
	select {
	case hub.unregister <- bot:
	default:
		go func() {
			select {
			case hub.unregister <- bot:
			case <-hub.stop:
			}
		}()
	}
}

func (bot *BotClient) Init() {
	r := getRand()
	defer poolRand(r)

	bot.name = randomBotName(r)
	bot.aggression = world.Square(r.Float32())
	bot.caution = 0.9 + r.Float32()*0.1
}

func (bot *BotClient) Send(out Outbound) {
	if bot.destroying {
		return
	}

	if encodeBotMessages {
		// Discard output
		if err := json.NewEncoder(io.Discard).Encode(Message{Data: out}); err != nil {
			panic("bot test marshal: " + err.Error())
		}
	}

	switch data := out.(type) {
	case CurrentGameState:
		bot.players = make(map[world.PlayerID]world.PlayerView, len(data.Players))
		for id, player := range data.Players {
			bot.players[id] = player
		}
		bot.orbs = make(map[world.OrbID]world.Vec3f, len(data.Orbs))
		for _, orb := range data.Orbs {
			bot.orbs[orb.ID] = orb.Vec3f
		}
		bot.planets = data.Planets
		if self, ok := data.Players[bot.SessionID]; ok {
			bot.position = self.Vec3f
			bot.alive = self.Alive
		}
	case PlayerJoined:
		bot.players[data.ID] = world.PlayerView(data)
	case PlayerMoved:
		bot.players[data.ID] = world.PlayerView(data)
	case PlayerRespawned:
		bot.players[data.ID] = world.PlayerView(data)
		if data.ID == bot.SessionID {
			bot.position = data.Vec3f
			bot.alive = true
			bot.waypoint = world.Vec3f{}
		}
	case PlayerLeft:
		delete(bot.players, world.PlayerID(data))
	case PlayerDied:
		if player, ok := bot.players[data.PlayerID]; ok {
			player.Alive = false
			bot.players[data.PlayerID] = player
		}
		if data.PlayerID == bot.SessionID {
			bot.alive = false

			r := getRand()
			if prob(r, 0.1) {
				bot.Destroy() // rage quit
			}
			poolRand(r)
		}
	case PlayerHealed:
		delete(bot.orbs, data.OrbID)
	case OrbSpawned:
		bot.orbs[data.ID] = data.Vec3f
	}
}

// think sends the bot's next moves. Called on the hub goroutine.
func (bot *BotClient) think() {
	if bot.destroying {
		return
	}

	if !bot.initialized {
		bot.initialized = true
		bot.receiveAsync(PlayerInit{Name: bot.name})
		return
	}

	if !bot.alive {
		return
	}

	// Use local rand to avoid locking
	r := getRand()
	defer poolRand(r)

	var closestOrb, closestEnemy Target
	var closestOrbID world.OrbID

	for id, position := range bot.orbs {
		if closestOrb.Closest(position, bot.position.DistanceSquared(position)) {
			closestOrbID = id
		}
	}

	for id, player := range bot.players {
		if id == bot.SessionID || !player.Alive {
			continue
		}
		closestEnemy.Closest(player.Vec3f, bot.position.DistanceSquared(player.Vec3f))
	}

	if (bot.waypoint == world.Vec3f{}) || bot.position.DistanceSquared(bot.waypoint) < 10*10 {
		// Pick a new random waypoint
		bot.waypoint = world.Vec3f{
			X: (r.Float32()*2 - 1) * world.WorldSize * 0.8,
			Y: r.Float32() * world.WorldSize * 0.6,
			Z: (r.Float32()*2 - 1) * world.WorldSize * 0.8,
		}
	}

	destination := bot.waypoint
	if closestOrb.found && closestOrb.distanceSquared < botOrbRange*botOrbRange {
		destination = closestOrb.Position
	}

	direction := destination.Sub(bot.position).Norm()
	step := float32(botPeriod.Seconds()) * botSpeed
	next := bot.position.AddScaled(direction, step)

	var crashed *world.Planet
	for i := range bot.planets {
		planet := &bot.planets[i]
		if !planet.Collides(next) {
			continue
		}

		if prob(r, float64(bot.caution)) {
			// Steer away and head somewhere else
			direction = bot.position.Sub(planet.Vec3f).Norm()
			next = bot.position.AddScaled(direction, step)
			bot.waypoint = world.Vec3f{}
		} else {
			crashed = planet
		}
		break
	}

	bot.position = next
	bot.receiveAsync(PlayerStateUpdate{
		Vec3f: next,
		Yaw:   math32.Atan2(direction.X, direction.Z),
		Pitch: math32.Asin(clamp(direction.Y, -1, 1)),
	})

	if crashed != nil {
		bot.receiveAsync(PlayerHitPlanet{PlanetID: crashed.ID})
		return
	}

	if closestOrb.found && next.DistanceSquared(closestOrb.Position) < botReach*botReach {
		bot.receiveAsync(OrbCollected(closestOrbID))
	}

	if closestEnemy.found && closestEnemy.distanceSquared < botFightRange*botFightRange && prob(r, float64(bot.aggression)) {
		jitter := world.Vec3f{X: r.Float32() - 0.5, Y: r.Float32() - 0.5, Z: r.Float32() - 0.5}
		aim := closestEnemy.Position.Add(jitter.Mul(world.PlayerRadius * 2)).Sub(next)
		if aim.LengthSquared() > 0 {
			bot.receiveAsync(PlayerShoot{
				StartPosition: next,
				Orientation:   world.QuatLookingAt(aim),
			})
		}
	}
}

// receiveAsync Doesn't deadlock the hub
func (bot *BotClient) receiveAsync(in Inbound) {
	bot.Hub.ReceiveAsync(SignedInbound{Client: bot, Inbound: in})
}

// Closest returns true if position is closer than the current target and replaces it.
func (t *Target) Closest(position world.Vec3f, distanceSquared float32) bool {
	if !t.found || distanceSquared < t.distanceSquared {
		t.Position = position
		t.distanceSquared = distanceSquared
		t.found = true
		return true
	}
	return false
}
