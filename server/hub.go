// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/cosmic/server/world"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

const (
	botPeriod   = time.Second / 4
	debugPeriod = time.Second * 5

	// encodeBotMessages makes BotClient.Send marshal json and check for errors.
	// Only useful for testing/benchmarking (drops performance significantly).
	encodeBotMessages = false
)

// HubOptions configures a Hub. The zero value is an offline hub without bots.
type HubOptions struct {
	Cloud  Cloud
	Logger *zap.SugaredLogger
	// MinClients is topped up with bots.
	MinClients int
	// RespawnDelay defaults to world.RespawnDelay.
	RespawnDelay time.Duration
	// Seed for world generation and respawn positions, 0 means random.
	Seed int64
	// Clock defaults to time.Now.
	Clock func() time.Time
	// StatsLog is a CSV file Debug appends to, if not empty.
	StatsLog string
}

// Hub maintains the set of active clients and broadcasts messages to the clients.
// Its goroutine (Run) owns the world; nothing else may touch it.
type Hub struct {
	// World state
	world    *world.World
	rand     *rand.Rand
	entropy  *ulid.MonotonicEntropy
	clients  ClientList // implemented as double-linked list
	respawns *respawnScheduler

	// Flags
	minClients int
	clock      func() time.Time
	statsLog   string

	// Cloud (and things that are served atomically by HTTP)
	cloud      Cloud
	statusJSON atomic.Value

	logger *zap.SugaredLogger
	// funcBenches are benchmarks of core Hub functions.
	funcBenches []funcBench

	// Inbound channels
	inbound    chan SignedInbound
	register   chan Client
	unregister chan Client

	// Timer based events
	cloudTicker *time.Ticker
	debugTicker *time.Ticker
	botsTicker  *time.Ticker

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func NewHub(options HubOptions) *Hub {
	if options.Cloud == nil {
		options.Cloud = Offline{}
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop().Sugar()
	}
	if options.RespawnDelay <= 0 {
		options.RespawnDelay = world.RespawnDelay
	}
	if options.Seed == 0 {
		options.Seed = time.Now().UnixNano()
	}
	if options.Clock == nil {
		options.Clock = time.Now
	}

	r := rand.New(rand.NewSource(options.Seed))
	w := world.New(r)
	options.Logger.Infow("world generated", "seed", options.Seed, "planets", len(w.Planets()), "orbs", w.OrbCount())

	return &Hub{
		world:       w,
		rand:        r,
		entropy:     ulid.Monotonic(r, 0),
		respawns:    newRespawnScheduler(options.RespawnDelay),
		minClients:  options.MinClients,
		clock:       options.Clock,
		statsLog:    options.StatsLog,
		cloud:       options.Cloud,
		logger:      options.Logger,
		inbound:     make(chan SignedInbound, 16+options.MinClients*2),
		register:    make(chan Client, 8+options.MinClients/16),
		unregister:  make(chan Client, 16+options.MinClients/8),
		cloudTicker: time.NewTicker(options.Cloud.UpdatePeriod()),
		debugTicker: time.NewTicker(debugPeriod),
		botsTicker:  time.NewTicker(botPeriod),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Register adds a client. It is safe to call from any goroutine.
func (h *Hub) Register(client Client) {
	select {
	case h.register <- client:
	case <-h.stop:
		client.Destroy()
	}
}

// Unregister removes a client. It is safe to call from any goroutine.
func (h *Hub) Unregister(client Client) {
	select {
	case h.unregister <- client:
	case <-h.stop:
	}
}

// ReceiveAsync queues an inbound without blocking, dropping it if the hub is backed up.
func (h *Hub) ReceiveAsync(in SignedInbound) {
	select {
	case h.inbound <- in:
	default:
		h.logger.Debugw("inbound dropped", "session", in.Client.Data().SessionID)
	}
}

// Stop stops Run and closes every client. Blocks until Run returns.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
	<-h.done
}

// Run processes events until Stop is called.
func (h *Hub) Run() {
	defer close(h.done)
	defer h.shutdown()

	h.Cloud()

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case in := <-h.inbound:
			// Read all messages currently in the channel
			n := len(h.inbound)

			for {
				// If not same hub the message is old
				if h == in.Client.Data().Hub {
					h.process(in)
				}

				if n--; n <= 0 {
					break
				}

				in = <-h.inbound
			}
		case task := <-h.respawns.due:
			if h.respawns.Claim(task) {
				h.respawn(task.id)
			}
		case <-h.botsTicker.C:
			h.Bots()
		case <-h.debugTicker.C:
			h.Debug()
		case <-h.cloudTicker.C:
			h.Cloud()
		case <-h.stop:
			return
		}
	}
}

func (h *Hub) shutdown() {
	h.cloudTicker.Stop()
	h.debugTicker.Stop()
	h.botsTicker.Stop()
	h.respawns.Stop()

	for client := h.clients.First; client != nil; client = h.clients.Remove(client) {
		client.Close()
		client.Data().Hub = nil
	}

	h.logger.Info("hub stopped")
}

func (h *Hub) addClient(client Client) {
	data := client.Data()
	if data.SessionID == world.PlayerIDInvalid {
		data.SessionID = world.PlayerID(uuid.NewString())
	}
	data.Hub = h
	h.clients.Add(client)
	client.Init()

	if !client.Bot() {
		h.cloud.IncrementPlayerStatistic()
	}
	h.logger.Debugw("client registered", "session", data.SessionID, "bot", client.Bot())
}

func (h *Hub) removeClient(client Client) {
	data := client.Data()
	// Already removed (or never added)
	if data.Hub != h {
		return
	}

	client.Close()
	data.Hub = nil
	h.clients.Remove(client)
	h.removePlayer(data.SessionID)
	h.logger.Debugw("client unregistered", "session", data.SessionID)
}

// process runs one inbound. A bad message must not take down the hub.
func (h *Hub) process(in SignedInbound) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Errorw("inbound panicked", "session", in.Client.Data().SessionID, "inbound", in.Inbound, "panic", r)
		}
	}()

	in.Inbound.Inbound(h, in.Client)
}

func (h *Hub) initPlayer(client Client, name string) {
	defer h.timeFunction("initPlayer", time.Now())

	id := client.Data().SessionID
	h.respawns.Cancel(id)
	player := h.world.InitPlayer(id, name)
	h.logger.Infow("player initialized", "session", id, "name", player.Name)

	client.Send(CurrentGameState{
		Players: h.world.PlayerViews(),
		Orbs:    h.world.Orbs(),
		Planets: h.world.Planets(),
		MyID:    id,
	})
	h.broadcastExcept(PlayerJoined(player.View()), client)
	h.broadcastScoreboard()
}

func (h *Hub) removePlayer(id world.PlayerID) {
	h.respawns.Cancel(id)
	if !h.world.RemovePlayer(id) {
		return
	}

	h.logger.Infow("player left", "session", id)
	h.broadcast(PlayerLeft(id))
	h.broadcastScoreboard()
}

func (h *Hub) move(client Client, pose world.Pose) {
	if player, ok := h.world.Move(client.Data().SessionID, pose); ok {
		h.broadcastExcept(PlayerMoved(player.View()), client)
	}
}

func (h *Hub) shoot(client Client, start world.Vec3f, orientation world.Quat) {
	defer h.timeFunction("shoot", time.Now())

	now := h.clock()
	shot, ok := h.world.Fire(client.Data().SessionID, start, orientation, now)
	if !ok {
		return
	}

	h.broadcast(ProjectileFired{
		ShooterID:     shot.Shooter.ID,
		ProjectileID:  h.projectileID(now),
		StartPosition: start,
		Orientation:   orientation,
		Lifespan:      float32(world.ProjectileLifespan.Seconds()),
	})

	if !shot.Hit() {
		return
	}

	h.broadcast(PlayerDamaged{
		PlayerID:             shot.Target.ID,
		NewHP:                shot.HP,
		AttackerID:           shot.Shooter.ID,
		ShotImpactPosition:   shot.Impact,
		DamageSourcePosition: shot.Shooter.Position,
	})

	if shot.Killed {
		h.died(shot.Target, world.KilledBy(shot.Shooter))
	}
}

func (h *Hub) hitPlanet(client Client, planetID world.PlanetID) {
	if player, ok := h.world.HitPlanet(client.Data().SessionID, planetID); ok {
		h.died(player, world.CrashedInto())
	}
}

// died announces a death that the world already applied and schedules the respawn.
func (h *Hub) died(player *world.Player, reason world.DeathReason) {
	h.logger.Debugw("player died", "session", player.ID, "killer", reason.KillerName, "pvp", reason.FromPlayer())

	h.broadcast(PlayerDied{
		PlayerID:      player.ID,
		KillerID:      reason.KillerID,
		KillerName:    reason.KillerName,
		VictimName:    player.Name,
		DeathPosition: player.Position,
	})
	h.broadcast(GlobalDeathNotification{
		VictimName: player.Name,
		KillerName: reason.KillerName,
	})
	h.broadcastScoreboard()

	if !h.respawns.Schedule(player.ID) {
		// Can't happen, dead players cannot die again.
		h.logger.Warnw("respawn already pending", "session", player.ID)
	}
}

func (h *Hub) respawn(id world.PlayerID) {
	player, ok := h.world.Respawn(id, h.rand)
	if !ok {
		return
	}

	h.broadcast(PlayerRespawned(player.View()))
	h.broadcastScoreboard()
}

func (h *Hub) collectOrb(client Client, orbID world.OrbID) {
	player, spawned, ok := h.world.CollectOrb(client.Data().SessionID, orbID, h.rand)
	if !ok {
		return
	}

	h.broadcast(PlayerHealed{
		PlayerID: player.ID,
		NewHP:    player.HP,
		OrbID:    orbID,
	})
	h.broadcast(OrbSpawned(spawned))
}

func (h *Hub) broadcastScoreboard() {
	defer h.timeFunction("scoreboard", time.Now())
	h.broadcast(UpdateScoreboard(h.world.Scoreboard()))
}

func (h *Hub) broadcast(out Outbound) {
	for client := h.clients.First; client != nil; client = client.Data().Next {
		client.Send(out)
	}
}

func (h *Hub) broadcastExcept(out Outbound, except Client) {
	for client := h.clients.First; client != nil; client = client.Data().Next {
		if client != except {
			client.Send(out)
		}
	}
}

func (h *Hub) projectileID(now time.Time) string {
	return "proj-" + ulid.MustNew(ulid.Timestamp(now), h.entropy).String()
}
