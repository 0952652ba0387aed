package constraints

import (
	"sort"

	"pubgames/leagueschedule/domain"
	"pubgames/leagueschedule/slots"
)

// Violation records one hard-constraint failure discovered during
// validation, named by rule and attributed to the offending game.
type Violation struct {
	Rule   string `json:"rule"`
	GameID string `json:"gameId"`
	Reason string `json:"reason"`
}

// TeamStats summarizes one team's outcome for a generation run, per
// spec.md §6's per_team_stats output.
type TeamStats struct {
	Games         int      `json:"games"`
	Home          int      `json:"home"`
	Away          int      `json:"away"`
	Doubleheaders int      `json:"doubleheaders"`
	DivisionsSeen []string `json:"divisionsPresent"`
	ShortfallBy   int      `json:"shortfallBy,omitempty"`
}

// ValidationReport is the output of Evaluator.Validate: every hard
// violation found while replaying the schedule, plus the weighted soft
// score for the schedule as a whole (spec.md §4.3, §6).
type ValidationReport struct {
	HardViolations   []Violation          `json:"hardViolations"`
	SoftScore        float64              `json:"softScore"`
	SoftBreakdown    map[string]float64   `json:"softBreakdown"`
	PerTeamStats     map[string]TeamStats `json:"perTeamStats"`
	NearHolidayGames map[string]int       `json:"nearHolidayGames,omitempty"`
	Cancelled        bool                 `json:"cancelled"`
}

// Feasible reports whether the schedule has zero hard violations.
func (r ValidationReport) Feasible() bool { return len(r.HardViolations) == 0 }

// BuildTeamStats computes per-team outcome summaries from a finished
// schedule, for every team in teams.
func BuildTeamStats(s *domain.Schedule, teams map[string]domain.Team, targetGamesPerTeam int) map[string]TeamStats {
	out := make(map[string]TeamStats, len(teams))
	for id := range teams {
		games := s.GamesByTeam(id)
		home, away := 0, 0
		byDate := map[string]int{}
		divisionsSeen := map[string]bool{}
		for _, g := range games {
			if g.HomeTeamID == id {
				home++
			} else {
				away++
			}
			byDate[g.Slot.Date.Format("2006-01-02")]++
			divisionsSeen[string(g.Division)] = true
		}
		doubleheaders := 0
		for _, n := range byDate {
			if n >= 2 {
				doubleheaders++
			}
		}
		var divisions []string
		for d := range divisionsSeen {
			divisions = append(divisions, d)
		}
		sort.Strings(divisions)

		stat := TeamStats{
			Games:         len(games),
			Home:          home,
			Away:          away,
			Doubleheaders: doubleheaders,
			DivisionsSeen: divisions,
		}
		if len(games) < targetGamesPerTeam {
			stat.ShortfallBy = targetGamesPerTeam - len(games)
		}
		out[id] = stat
	}
	return out
}

// BuildHolidayProximity surfaces, per game, how many days separate it from
// the nearest configured holiday when that distance is within the 10-day
// window slots.NearestHoliday tracks. It is informational context only —
// H8 already excludes holiday dates outright during placement — so a game
// present here was merely scheduled close to one, not on one.
func BuildHolidayProximity(s *domain.Schedule, holidays map[string]struct{}) map[string]int {
	if len(holidays) == 0 {
		return nil
	}
	out := map[string]int{}
	for _, g := range s.Games() {
		days, found := slots.NearestHoliday(g.Slot.Date, holidays)
		if found {
			out[g.ID] = days
		}
	}
	return out
}
