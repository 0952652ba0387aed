// Package rules defines the immutable configuration bundle every other
// component reads from. A Rules value is built once at the start of a
// generate() run and never mutated afterward (spec.md §4.1, §9).
package rules

import (
	"fmt"
	"time"

	"pubgames/leagueschedule/internal/engineerr"
)

// Window is a local time-of-day range, e.g. 18:00-21:00 for weeknights.
type Window struct {
	Start time.Duration // offset from midnight
	End   time.Duration
}

// Rules is the full configuration bundle described in spec.md §4.1.
type Rules struct {
	SeasonStart time.Time
	SeasonEnd   time.Time

	Holidays     map[string]struct{} // "2006-01-02" -> present
	PlayOnSunday bool

	GameDurationMinutes int
	WeeknightWindow     Window
	SaturdayWindow      Window

	TargetGamesPerTeam int
	MaxGamesPer7Days   int
	MaxGamesPer14Days  int

	MaxDoubleheadersPerSeason int
	DoubleheaderBreakMinutes  int

	MaxRematches int

	// PriorityWeights maps a soft-constraint key (S1..S8, the Key() of
	// each rule in constraints.SoftConstraints) to a non-negative weight. Production
	// values are a deployer concern (spec.md §9 open question); this
	// package only carries whatever the caller supplies.
	PriorityWeights map[string]int

	CPTimeBudgetSeconds int
	GreedyMaxPasses     int
}

// GameDuration returns GameDurationMinutes as a time.Duration.
func (r Rules) GameDuration() time.Duration {
	return time.Duration(r.GameDurationMinutes) * time.Minute
}

// IsHoliday reports whether the given date (any time-of-day) falls on a
// configured holiday.
func (r Rules) IsHoliday(date time.Time) bool {
	key := date.Format("2006-01-02")
	_, ok := r.Holidays[key]
	return ok
}

// Weight returns the configured weight for a soft-constraint key, or 0 if
// the deployer never set one — an unconfigured soft constraint contributes
// nothing to the objective rather than panicking.
func (r Rules) Weight(key string) int {
	return r.PriorityWeights[key]
}

// Validate checks the structural invariants spec.md §7 requires before any
// search begins. A failure here is always engineerr.KindInvalidInput —
// everything else is data-driven and reported, never raised.
func (r Rules) Validate() error {
	if r.SeasonEnd.Before(r.SeasonStart) {
		return engineerr.New(engineerr.KindInvalidInput, "season_end before season_start")
	}
	if r.GameDurationMinutes <= 0 {
		return engineerr.New(engineerr.KindInvalidInput, "game_duration_minutes must be positive")
	}
	if r.TargetGamesPerTeam <= 0 {
		return engineerr.New(engineerr.KindInvalidInput, "target_games_per_team must be positive")
	}
	if r.MaxGamesPer7Days <= 0 || r.MaxGamesPer14Days <= 0 {
		return engineerr.New(engineerr.KindInvalidInput, "frequency caps must be positive")
	}
	if r.MaxDoubleheadersPerSeason < 0 {
		return engineerr.New(engineerr.KindInvalidInput, "max_doubleheaders_per_season cannot be negative")
	}
	if r.MaxRematches <= 0 {
		return engineerr.New(engineerr.KindInvalidInput, "max_rematches must be positive")
	}
	if r.GreedyMaxPasses <= 0 {
		return engineerr.New(engineerr.KindInvalidInput, "greedy_max_passes must be positive")
	}
	for key, w := range r.PriorityWeights {
		if w < 0 {
			return engineerr.New(engineerr.KindInvalidInput, fmt.Sprintf("priority weight %q cannot be negative", key))
		}
	}
	return nil
}

// Default returns the documented default Rules bundle from spec.md §4.1,
// with an empty holiday set and zero weights — callers are expected to
// layer Load or explicit overrides on top for a real run.
func Default() Rules {
	return Rules{
		GameDurationMinutes:       60,
		WeeknightWindow:           Window{Start: 18 * time.Hour, End: 21 * time.Hour},
		SaturdayWindow:            Window{Start: 9 * time.Hour, End: 17 * time.Hour},
		TargetGamesPerTeam:        8,
		MaxGamesPer7Days:          2,
		MaxGamesPer14Days:         3,
		MaxDoubleheadersPerSeason: 1,
		DoubleheaderBreakMinutes:  30,
		MaxRematches:              2,
		PriorityWeights:           map[string]int{},
		CPTimeBudgetSeconds:       30,
		GreedyMaxPasses:          20,
		Holidays:                  map[string]struct{}{},
	}
}
