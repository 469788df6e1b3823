// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"testing"
	"unicode/utf8"
)

func TestPlayerName(t *testing.T) {
	const id = PlayerID("f81d4fae-7dec-11d0-a765-00a0c91e6bf6")

	tests := []struct {
		requested string
		expected  string
	}{
		{"", "Pilot_f81d"},
		{"   ", "Pilot_f81d"},
		{"Ace", "Ace"},
		{"  Maverick  ", "Maverick"},
		{"[Ace]", "Ace"},
		{"abcdefghijklmnopqrstuvwxyz", "abcdefghijklmno"},
		{"Planet", "Pilot_f81d"},
		{"SERVER", "Pilot_f81d"},
		{"\u200bGhost\u2800", "Ghost"},
		{"日本語の名前です日本語の名前です", "日本語の名前です日本語の名前で"},
		{"\xff\xfe", "Pilot_f81d"},
	}

	for _, test := range tests {
		if name := PlayerName(id, test.requested); name != test.expected {
			t.Errorf("expected PlayerName(%q): %q, got %q", test.requested, test.expected, name)
		}
	}
}

func TestPlayerName_Length(t *testing.T) {
	inputs := []string{
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"ééééééééééééééééééééé",
		"a                       b",
	}

	for _, input := range inputs {
		name := PlayerName("x", input)
		if n := utf8.RuneCountInString(name); n == 0 || n > PlayerNameLengthMax {
			t.Errorf("expected 1..%d runes for %q, got %q", PlayerNameLengthMax, input, name)
		}
	}
}

func TestDefaultPlayerName(t *testing.T) {
	tests := []struct {
		id       PlayerID
		expected string
	}{
		{"abcdef", "Pilot_abcd"},
		{"ab", "Pilot_ab"},
		{"", "Pilot_"},
	}

	for _, test := range tests {
		if name := DefaultPlayerName(test.id); name != test.expected {
			t.Errorf("expected DefaultPlayerName(%q): %q, got %q", test.id, test.expected, name)
		}
	}
}
