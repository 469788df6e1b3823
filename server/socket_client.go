// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 5 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 8) / 10

	// If more than this many messages are queued for sending, the
	// socket is congested and messages may be dropped
	socketCongestionThreshold = 16

	// Allows ~1 second of messages to backup before close
	// (although the sending may be throttled to slow down
	// hitting this limit)
	socketBufferSize = 64

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Clients send state updates every frame, so allow a high frame rate plus shots.
	inboundRate  = 150 // per second
	inboundBurst = 60
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	HandshakeTimeout: time.Second,
	ReadBufferSize:   maxMessageSize,
	WriteBufferSize:  2048,
}

// SocketClient is a middleman between the websocket connection and the hub.
type SocketClient struct {
	ClientData
	hub     *Hub // unlike ClientData.Hub, safe to read from pumps
	conn    *websocket.Conn
	send    chan Outbound
	limiter *rate.Limiter
	once    sync.Once
	counter int // counts up every send
}

// NewSocketClient creates a SocketClient from a connection. It still needs to be registered.
func NewSocketClient(hub *Hub, conn *websocket.Conn) *SocketClient {
	return &SocketClient{
		hub:     hub,
		conn:    conn,
		send:    make(chan Outbound, socketBufferSize),
		limiter: rate.NewLimiter(inboundRate, inboundBurst),
	}
}

func (client *SocketClient) Bot() bool {
	return false
}

func (client *SocketClient) Close() {
	close(client.send)
}

func (client *SocketClient) Data() *ClientData {
	return &client.ClientData
}

func (client *SocketClient) Destroy() {
	client.once.Do(func() {
		hub := client.hub

		// Needs to go through when called on hub goroutine.
		select {
		case hub.unregister <- client:
		default:
			go func() {
				select {
				case hub.unregister <- client:
				case <-hub.stop:
				}
			}()
		}

		_ = client.conn.Close()
	})
}

func (client *SocketClient) Init() {
	go client.writePump()
	go client.readPump()
}

func (client *SocketClient) Send(message Outbound) {
	// How many messages there are in excess of a reasonable amount
	congestion := len(client.send) - socketCongestionThreshold

	// The closer the buffer is to being full, the more messages
	// we drop on the floor (to give the socket a chance to
	// catch up)
	client.counter++
	if congestion > 1 && client.counter%congestion != 0 {
		// Drop the message on the floor
		// Movement is resent every frame, events are lost
		client.hub.logger.Debugw("socket dropping message due to congestion", "session", client.SessionID)
		return
	}

	select {
	case client.send <- message:
	default:
		client.hub.logger.Infow("socket is not responsive", "session", client.SessionID)
		client.Destroy()
	}
}

func (client *SocketClient) readPump() {
	defer client.Destroy()
	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	logger := client.hub.logger

	for {
		_, r, err := client.conn.NextReader()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Infow("close error", "err", err)
			}
			break
		}

		if !client.limiter.Allow() {
			logger.Debugw("socket flooding, dropped message")
			continue
		}

		var message Message
		if err = json.NewDecoder(r).Decode(&message); err != nil {
			// Malformed messages are ignored, not fatal
			logger.Debugw("unmarshal error", "err", err)
			continue
		}

		if invalidMessage, ok := message.Data.(InvalidInbound); ok {
			logger.Debugw("invalid message type received", "type", invalidMessage.messageType)
			continue
		}

		select {
		case client.hub.inbound <- SignedInbound{Client: client, Inbound: message.Data.(Inbound)}:
		case <-client.hub.stop:
			return
		}
	}
}

func (client *SocketClient) writePump() {
	pingTicker := time.NewTicker(pingPeriod)

	defer func() {
		if err := recover(); err != nil {
			client.hub.logger.Debugw("send error", "err", err)
		}
		pingTicker.Stop()
		client.Destroy()
	}()

	for {
		select {
		case out, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				_ = client.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}

			w, err := client.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				panic(err)
			}

			// Wrap with Message to marshal type
			if err = json.NewEncoder(w).Encode(Message{Data: out}); err != nil {
				panic(err)
			}

			if err = w.Close(); err != nil {
				panic(err)
			}
		case <-pingTicker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
