// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

// DeathReasonPlanet is the killer name of players that crashed into a planet.
const DeathReasonPlanet = "Planet"

// DeathReason is who or what killed a player.
type DeathReason struct {
	// KillerID is PlayerIDInvalid unless another player was responsible.
	KillerID   PlayerID
	KillerName string
}

// KilledBy returns the DeathReason for a kill by player.
func KilledBy(player *Player) DeathReason {
	return DeathReason{KillerID: player.ID, KillerName: player.Name}
}

// CrashedInto returns the DeathReason for a planet collision.
func CrashedInto() DeathReason {
	return DeathReason{KillerName: DeathReasonPlanet}
}

// FromPlayer returns whether the death was a result of player actions.
func (reason DeathReason) FromPlayer() bool {
	return reason.KillerID != PlayerIDInvalid
}
