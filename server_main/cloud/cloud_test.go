// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"errors"
	"github.com/SoftbearStudios/cosmic/server_main/cloud/db"
	"net"
	"strings"
	"testing"
)

type fakeDatabase struct {
	servers    []db.Server
	statistics []db.Statistic
	fail       bool
}

func (f *fakeDatabase) AddStatistic(statistic db.Statistic) error {
	if f.fail {
		return errors.New("unavailable")
	}
	f.statistics = append(f.statistics, statistic)
	return nil
}

func (f *fakeDatabase) UpdateServer(server db.Server) error {
	f.servers = append(f.servers, server)
	return nil
}

func (f *fakeDatabase) ReadServersByRegion(region string) ([]db.Server, error) {
	var servers []db.Server
	for _, server := range f.servers {
		if server.Region == region {
			servers = append(servers, server)
		}
	}
	return servers, nil
}

type fakeDNS struct {
	routes map[int]net.IP
}

func (f *fakeDNS) UpdateRoute(_ string, slot int, address net.IP) error {
	f.routes[slot] = address
	return nil
}

type fakeFilesystem struct {
	files map[string][]byte
}

func (f *fakeFilesystem) UploadStaticFile(filename string, _ int, data []byte) error {
	f.files[filename] = data
	return nil
}

func TestAllocateSlot(t *testing.T) {
	a := net.ParseIP("10.0.0.1")
	b := net.ParseIP("10.0.0.2")
	c := net.ParseIP("10.0.0.3")

	tests := []struct {
		name     string
		servers  []db.Server
		slots    int
		expected int
		err      error
	}{
		{name: "empty", slots: 2, expected: 0},
		{name: "reclaim", servers: []db.Server{{IP: b, Slot: 0}, {IP: a, Slot: 1}}, slots: 2, expected: 1},
		{name: "gap", servers: []db.Server{{IP: b, Slot: 0}, {IP: c, Slot: 2}}, slots: 3, expected: 1},
		{name: "full", servers: []db.Server{{IP: b, Slot: 0}, {IP: c, Slot: 1}}, slots: 2, expected: -1, err: ErrNoSlot},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			slot, err := allocateSlot(a, test.servers, test.slots)
			if slot != test.expected || !errors.Is(err, test.err) {
				t.Errorf("expected %d (%v), got %d (%v)", test.expected, test.err, slot, err)
			}
		})
	}
}

func TestNewCloud(t *testing.T) {
	ip := net.ParseIP("10.0.0.1")
	database := &fakeDatabase{servers: []db.Server{{Region: "us-east-1", Slot: 0, IP: net.ParseIP("10.0.0.9")}}}
	d := &fakeDNS{routes: make(map[int]net.IP)}
	filesystem := &fakeFilesystem{files: make(map[string][]byte)}

	cloud, err := newCloud("us-east-1", 4, ip, database, d, filesystem)
	if err != nil {
		t.Fatal(err)
	}
	if cloud.serverSlot != 1 {
		t.Errorf("expected slot 1, got %d", cloud.serverSlot)
	}
	if !d.routes[1].Equal(ip) {
		t.Errorf("route not updated: %v", d.routes)
	}
	if last := database.servers[len(database.servers)-1]; last.Slot != 1 || last.TTL == 0 {
		t.Errorf("server not registered: %+v", last)
	}
	if s := cloud.String(); s != "[us-east-1 1 10.0.0.1]" {
		t.Errorf("unexpected string %q", s)
	}

	if err := cloud.UploadScoreboard([]byte("[]")); err != nil {
		t.Fatal(err)
	}
	if string(filesystem.files["scoreboard.json"]) != "[]" {
		t.Error("scoreboard not uploaded")
	}
}

func TestFlushStatistics(t *testing.T) {
	database := &fakeDatabase{}
	cloud := &Cloud{region: "eu-west-1", database: database}

	// Nothing to flush
	if err := cloud.FlushStatistics(); err != nil || len(database.statistics) != 0 {
		t.Fatalf("unexpected flush %v %v", err, database.statistics)
	}

	cloud.IncrementPlayerStatistic()
	cloud.IncrementPlayerStatistic()

	database.fail = true
	if err := cloud.FlushStatistics(); err == nil {
		t.Fatal("expected error")
	}

	database.fail = false
	cloud.IncrementPlayerStatistic()
	if err := cloud.FlushStatistics(); err != nil {
		t.Fatal(err)
	}

	if len(database.statistics) != 1 || database.statistics[0].Players != 3 || database.statistics[0].Region != "eu-west-1" {
		t.Errorf("failed flush should be retried, got %+v", database.statistics)
	}
}

func TestParseUserData(t *testing.T) {
	const userData = `#!/bin/bash
export DOMAIN="cosmic.example"
REGION=us-east-1
STAGE = prod
SERVER_SLOTS=4
ROUTE53_ZONEID="Z123"
`
	data, err := parseUserData(strings.NewReader(userData))
	if err != nil {
		t.Fatal(err)
	}
	expected := UserData{Domain: "cosmic.example", Region: "us-east-1", Stage: "prod", ServerSlots: 4, Route53ZoneID: "Z123"}
	if *data != expected {
		t.Errorf("expected %+v, got %+v", expected, *data)
	}

	for _, bad := range []string{
		"",
		strings.Replace(userData, "SERVER_SLOTS=4", "SERVER_SLOTS=four", 1),
		strings.Replace(userData, "STAGE = prod", "", 1),
	} {
		if _, err := parseUserData(strings.NewReader(bad)); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
