// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"github.com/SoftbearStudios/cosmic/server/world"
	"testing"
)

func testMarshal(t *testing.T, out Outbound, expected string) {
	t.Helper()

	buf, err := json.Marshal(Message{Data: out})
	if err != nil {
		t.Error("error marshaling:", err.Error())
		return
	}
	if !bytes.Equal(buf, []byte(expected)) {
		j := 0
		for j < len(buf) && j < len(expected) && buf[j] == expected[j] {
			j++
		}
		t.Error("different output:\none:", expected, "\ntwo:", string(buf), "\ndiff:", j)
	}
}

func TestJsonIterOutbound(t *testing.T) {
	deathPosition := world.Vec3f{X: 1, Y: 0.5, Z: -2}

	testMarshal(t, PlayerDied{
		PlayerID:      "victim",
		KillerName:    world.DeathReasonPlanet,
		VictimName:    "bob",
		DeathPosition: deathPosition,
	}, `{"data":{"playerId":"victim","killerId":null,"killerName":"Planet","victimName":"bob","deathPosition":{"x":1,"y":0.5,"z":-2}},"type":"playerDied"}`)

	testMarshal(t, PlayerDied{
		PlayerID:      "victim",
		KillerID:      "killer",
		KillerName:    "alice",
		VictimName:    "bob",
		DeathPosition: deathPosition,
	}, `{"data":{"playerId":"victim","killerId":"killer","killerName":"alice","victimName":"bob","deathPosition":{"x":1,"y":0.5,"z":-2}},"type":"playerDied"}`)

	testMarshal(t, PlayerLeft("gone"), `{"data":"gone","type":"playerLeft"}`)

	testMarshal(t, PlayerMoved{
		Vec3f:      world.Vec3f{X: 1, Y: 2, Z: 3},
		PlayerData: world.PlayerData{Name: "bob", Kills: 1},
		ID:         "b",
		Yaw:        0.25,
		HP:         100,
		MaxHP:      100,
		Alive:      true,
	}, `{"data":{"x":1,"y":2,"z":3,"name":"bob","kills":1,"deaths":0,"id":"b","yaw":0.25,"pitch":0,"hp":100,"maxHp":100,"isAlive":true},"type":"playerMoved"}`)

	testMarshal(t, UpdateScoreboard{{ID: "b", Name: "bob", Kills: 2, Deaths: 1, Alive: false}},
		`{"data":[{"id":"b","name":"bob","kills":2,"deaths":1,"isAlive":false}],"type":"updateScoreboard"}`)

	testMarshal(t, PlayerHealed{PlayerID: "b", NewHP: 75, OrbID: "orb-1"},
		`{"data":{"playerId":"b","newHp":75,"orbId":"orb-1"},"type":"playerHealed"}`)
}

func TestJsonIterInbound(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected interface{}
	}{
		{
			name:     "orb",
			in:       `{"type":"orbCollected","data":"orb-123"}`,
			expected: OrbCollected("orb-123"),
		},
		{
			name:     "data first",
			in:       `{"data":{"planetId":"planet-1"},"type":"playerHitPlanet"}`,
			expected: PlayerHitPlanet{PlanetID: "planet-1"},
		},
		{
			name:     "init",
			in:       `{"type":"playerInit","data":{"name":"bob"}}`,
			expected: PlayerInit{Name: "bob"},
		},
		{
			name: "shoot",
			in:   `{"type":"playerShoot","data":{"startPosition":{"x":1,"y":2,"z":3},"orientation":{"_x":0,"_y":0,"_z":0,"_w":1}}}`,
			expected: PlayerShoot{
				StartPosition: world.Vec3f{X: 1, Y: 2, Z: 3},
				Orientation:   world.QuatIdentity,
			},
		},
		{
			name:     "null component",
			in:       `{"type":"playerShoot","data":{"startPosition":{"x":1,"y":null},"orientation":{"_w":1}}}`,
			expected: PlayerShoot{StartPosition: world.Vec3f{X: 1}, Orientation: world.QuatIdentity},
		},
		{
			name:     "state",
			in:       `{"type":"playerStateUpdate","data":{"x":1,"y":2,"z":3,"yaw":0.5,"pitch":-0.25,"extra":true}}`,
			expected: PlayerStateUpdate{Vec3f: world.Vec3f{X: 1, Y: 2, Z: 3}, Yaw: 0.5, Pitch: -0.25},
		},
		{
			name:     "unknown",
			in:       `{"type":"chat","data":"hi"}`,
			expected: InvalidInbound{messageType: "chat"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var message Message
			if err := json.Unmarshal([]byte(test.in), &message); err != nil {
				t.Fatal("error unmarshaling:", err.Error())
			}
			if message.Data != test.expected {
				t.Errorf("expected %#v, got %#v", test.expected, message.Data)
			}
		})
	}
}

func TestJsonIterMalformed(t *testing.T) {
	for _, in := range []string{
		`[]`,
		`{"data":{"name":"bob"}}`,
		`{"type":"playerInit","data":{"name":5}}`,
		`{"type":"playerShoot","data":{"startPosition":"up"}}`,
	} {
		var message Message
		if err := json.Unmarshal([]byte(in), &message); err == nil {
			t.Errorf("%q: expected error, got %#v", in, message.Data)
		}
	}
}

func BenchmarkJsonIterInbound(b *testing.B) {
	in := []byte(`{"type":"playerStateUpdate","data":{"x":1.5,"y":2.5,"z":3.5,"yaw":0.5,"pitch":-0.25}}`)
	for i := 0; i < b.N; i++ {
		var message Message
		if err := json.Unmarshal(in, &message); err != nil {
			b.Fatal(err)
		}
	}
}
