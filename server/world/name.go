// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/finnbear/moderation"
	"strings"
	"unicode"
	"unicode/utf8"
)

const defaultNamePrefix = "Pilot_"

var reservedNames = [...]string{
	"admin",
	"administrator",
	"console",
	"mod",
	"moderator",
	"owner",
	"planet",
	"root",
	"server",
	"staff",
	"system",
}

// PlayerName returns a display name for id based on requested.
// Invalid, reserved or empty names are replaced by a default derived from id.
func PlayerName(id PlayerID, requested string) string {
	if name, ok := sanitizeName(requested); ok {
		return name
	}
	return DefaultPlayerName(id)
}

// DefaultPlayerName is Pilot_ followed by the first 4 characters of id.
func DefaultPlayerName(id PlayerID) string {
	prefix := string(id)
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	return defaultNamePrefix + prefix
}

func sanitizeName(text string) (string, bool) {
	if !utf8.ValidString(text) {
		return "", false
	}

	// Brackets are used in formatting
	// * is used for censoring
	const removals = "()[]{}*"
	for i := 0; i < len(removals); i++ {
		text = strings.ReplaceAll(text, removals[i:i+1], "")
	}

	text = strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || unicode.IsGraphic(r) {
			return r
		}
		return -1
	}, text)

	text, ok := trimName(text, PlayerNameLengthMax)
	if !ok {
		return "", false
	}

	lower := strings.ToLower(text)
	for _, reservedName := range reservedNames {
		if lower == reservedName {
			return "", false
		}
	}

	result := moderation.Scan(text)
	if result.Is(moderation.Inappropriate) {
		if result.Is(moderation.Inappropriate & moderation.Moderate) {
			return "", false
		}
		text, _ = moderation.Censor(text, moderation.Inappropriate)
	}

	return text, true
}

// trimName trims blank runes and truncates to at most high runes.
func trimName(in string, high int) (string, bool) {
	str := strings.TrimFunc(in, func(r rune) bool {
		// NOTE: The following characters are not detected by
		// unicode.IsSpace() but show up as blank

		// https://www.compart.com/en/unicode/U+2800
		// https://www.compart.com/en/unicode/U+200B
		return unicode.IsSpace(r) || r == 0x2800 || r == 0x200B
	})

	if utf8.RuneCountInString(str) > high {
		runes := []rune(str)
		str = strings.TrimRightFunc(string(runes[:high]), unicode.IsSpace)
	}

	return str, str != ""
}
