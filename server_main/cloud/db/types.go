// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import (
	"net"
)

// Statistic counts per region per day. Players is added to, never overwritten.
type Statistic struct {
	Region  string `dynamo:"region"`
	Day     string `dynamo:"day"` // YYYY-MM-DD
	Players int64  `dynamo:"players"`
	TTL     int64  `dynamo:"ttl,omitempty"`
}

type Server struct {
	Region  string `dynamo:"region"`
	Slot    int    `dynamo:"slot"`
	IP      net.IP `dynamo:"ip"`
	Players int    `dynamo:"players"`
	TTL     int64  `dynamo:"ttl,omitempty"`
}
