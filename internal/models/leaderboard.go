package models

import (
	"fmt"
	"strings"
)

// GameMode selects which leaderboard the API returns
type GameMode string

const (
	ModeMacguffin    GameMode = "r_macguffin"
	ModeWipeout      GameMode = "r_wo"
	ModeRocketArena2 GameMode = "r_rocket_arena_2"
	ModeShaftArena1  GameMode = "r_shaft_arena_1"
	ModeClanArena2   GameMode = "r_ca_2"
	ModeClanArena1   GameMode = "r_ca_1"
)

// Entry count bounds for a single query
const (
	DefaultEntryCount = 20
	MaxEntryCount     = 500
)

// GameModes lists every mode the API accepts, in the order shown in usage text.
var GameModes = []GameMode{
	ModeMacguffin,
	ModeWipeout,
	ModeRocketArena2,
	ModeShaftArena1,
	ModeClanArena2,
	ModeClanArena1,
}

// ParseGameMode returns the GameMode named by s. Matching is exact.
func ParseGameMode(s string) (GameMode, error) {
	for _, m := range GameModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", &ArgumentError{Field: "mode", Reason: fmt.Sprintf("unknown mode %q (want one of %s)", s, GameModeList())}
}

// GameModeList renders the accepted modes for usage and error messages.
func GameModeList() string {
	names := make([]string, len(GameModes))
	for i, m := range GameModes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// Entry field names the client relies on. Everything else is passed through.
const (
	FieldUserID  = "user_id"
	FieldCountry = "country"
)
