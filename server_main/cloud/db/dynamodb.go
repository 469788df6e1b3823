// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/guregu/dynamo"
)

type DynamoDBDatabase struct {
	svc             *dynamodb.DynamoDB
	db              *dynamo.DB
	statisticsTable dynamo.Table
	serversTable    dynamo.Table
}

func NewDynamoDBDatabase(session *session.Session, stage string) (*DynamoDBDatabase, error) {
	ddb := &DynamoDBDatabase{svc: dynamodb.New(session)}
	ddb.db = dynamo.NewFromIface(ddb.svc)
	ddb.statisticsTable = ddb.db.Table("cosmic-" + stage + "-statistics")
	ddb.serversTable = ddb.db.Table("cosmic-" + stage + "-servers")
	return ddb, nil
}

// AddStatistic adds to the existing statistic, creating it if necessary.
func (ddb *DynamoDBDatabase) AddStatistic(statistic Statistic) error {
	update := ddb.statisticsTable.Update("region", statistic.Region).
		Range("day", statistic.Day).
		Add("players", statistic.Players)
	if statistic.TTL != 0 {
		update = update.Set("ttl", statistic.TTL)
	}
	return update.Run()
}

func (ddb *DynamoDBDatabase) UpdateServer(server Server) error {
	return ddb.serversTable.Put(server).Run()
}

func (ddb *DynamoDBDatabase) ReadServersByRegion(region string) (servers []Server, err error) {
	query := ddb.serversTable.Get("region", region).Iter()

	for {
		var server Server
		ok := query.Next(&server)
		if !ok {
			err = query.Err()
			return
		}
		servers = append(servers, server)
	}
}
