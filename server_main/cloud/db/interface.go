// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

type Database interface {
	AddStatistic(statistic Statistic) error
	UpdateServer(server Server) error
	ReadServersByRegion(region string) (servers []Server, err error)
}
