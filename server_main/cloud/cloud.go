// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"errors"
	"github.com/SoftbearStudios/cosmic/server_main/cloud/db"
	"github.com/SoftbearStudios/cosmic/server_main/cloud/dns"
	"github.com/SoftbearStudios/cosmic/server_main/cloud/fs"
	"net"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

const (
	UpdatePeriod = 30 * time.Second

	// scoreboardCache is how long browsers may cache the uploaded scoreboard, in seconds.
	scoreboardCache = 5
	statisticTTL    = 90 * 24 * time.Hour
)

var ErrNoSlot = errors.New("no empty server slot")

// Cloud registers the server with DynamoDB and Route53 and uploads its scoreboard to S3.
// Use server.Offline if there is no cloud.
type Cloud struct {
	region     string
	serverSlot int
	ip         net.IP
	database   db.Database
	dns        dns.DNS
	fs         fs.Filesystem

	// Players that joined since the last FlushStatistics.
	newPlayers int64
}

func (cloud *Cloud) String() string {
	var builder strings.Builder
	builder.WriteByte('[')
	builder.WriteString(cloud.region)
	builder.WriteByte(' ')
	builder.WriteString(strconv.Itoa(cloud.serverSlot))
	builder.WriteByte(' ')
	builder.WriteString(cloud.ip.String())
	builder.WriteByte(']')
	return builder.String()
}

func New() (*Cloud, error) {
	userData, err := loadUserData()
	if err != nil {
		return nil, err
	}

	ip, err := getPublicIP()
	if err != nil {
		return nil, err
	}
	session, err := getAWSSession(userData.Region)
	if err != nil {
		return nil, err
	}

	database, err := db.NewDynamoDBDatabase(session, userData.Stage)
	if err != nil {
		return nil, err
	}
	route53, err := dns.NewRoute53DNS(session, userData.Domain, userData.Route53ZoneID)
	if err != nil {
		return nil, err
	}
	filesystem, err := fs.NewS3Filesystem(session, userData.Stage, userData.Region)
	if err != nil {
		return nil, err
	}

	return newCloud(userData.Region, userData.ServerSlots, ip, database, route53, filesystem)
}

func newCloud(region string, slots int, ip net.IP, database db.Database, d dns.DNS, filesystem fs.Filesystem) (*Cloud, error) {
	servers, err := database.ReadServersByRegion(region)
	if err != nil {
		return nil, err
	}

	slot, err := allocateSlot(ip, servers, slots)
	if err != nil {
		return nil, err
	}

	cloud := &Cloud{
		region:     region,
		serverSlot: slot,
		ip:         ip,
		database:   database,
		dns:        d,
		fs:         filesystem,
	}

	if err = cloud.dns.UpdateRoute(cloud.region, cloud.serverSlot, cloud.ip); err != nil {
		return nil, err
	}
	if err = cloud.UpdateServer(0); err != nil {
		return nil, err
	}
	return cloud, nil
}

// allocateSlot reclaims the slot registered to ip, or else takes the lowest free one.
func allocateSlot(ip net.IP, servers []db.Server, slots int) (int, error) {
	for _, server := range servers {
		if ip.Equal(server.IP) {
			return server.Slot, nil
		}
	}

scan:
	for slot := 0; slot < slots; slot++ {
		for _, server := range servers {
			if server.Slot == slot {
				// Slot is taken
				continue scan
			}
		}
		return slot, nil
	}
	return -1, ErrNoSlot
}

// UpdateServer must be called at least every UpdatePeriod or the server expires.
func (cloud *Cloud) UpdateServer(players int) error {
	return cloud.database.UpdateServer(db.Server{
		Region:  cloud.region,
		Slot:    cloud.serverSlot,
		IP:      cloud.ip,
		Players: players,
		TTL:     time.Now().Add(UpdatePeriod + 5*time.Second).Unix(),
	})
}

func (cloud *Cloud) IncrementPlayerStatistic() {
	atomic.AddInt64(&cloud.newPlayers, 1)
}

// FlushStatistics adds the players counted since the last flush to today's statistic.
func (cloud *Cloud) FlushStatistics() error {
	players := atomic.SwapInt64(&cloud.newPlayers, 0)
	if players == 0 {
		return nil
	}

	now := time.Now().UTC()
	err := cloud.database.AddStatistic(db.Statistic{
		Region:  cloud.region,
		Day:     now.Format("2006-01-02"),
		Players: players,
		TTL:     now.Add(statisticTTL).Unix(),
	})
	if err != nil {
		// Try again next time
		atomic.AddInt64(&cloud.newPlayers, players)
	}
	return err
}

func (cloud *Cloud) UploadScoreboard(scoreboard []byte) error {
	return cloud.fs.UploadStaticFile("scoreboard.json", scoreboardCache, scoreboard)
}

func (cloud *Cloud) UpdatePeriod() time.Duration {
	return UpdatePeriod
}
