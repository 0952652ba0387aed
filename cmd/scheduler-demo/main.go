// Command scheduler-demo is a thin proof-of-library harness: it loads a
// bundled sample league, calls schedule.Generate, and prints the
// resulting schedule and validation report to stdout. It is not the
// production loader/writer/HTTP layer — that stays out of scope of this
// module.
package main

import (
	_ "embed"
	"encoding/json"
	"log"
	"os"
	"time"

	schedule "pubgames/leagueschedule"
	"pubgames/leagueschedule/constraints"
	"pubgames/leagueschedule/domain"
	"pubgames/leagueschedule/rules"
)

const APP_NAME = "League Schedule Demo"

//go:embed testdata/league.json
var sampleLeague []byte

type fixture struct {
	SeasonStart        string            `json:"seasonStart"`
	SeasonEnd          string            `json:"seasonEnd"`
	TargetGamesPerTeam int               `json:"targetGamesPerTeam"`
	Facilities         []domain.Facility `json:"facilities"`
	Teams              []domain.Team     `json:"teams"`
	RivalPairs         [][2]string       `json:"rivalPairs"`
	DoNotPlayPairs     [][2]string       `json:"doNotPlayPairs"`
}

func main() {
	log.SetOutput(os.Stdout)
	log.Printf("🗓️  %s starting", APP_NAME)

	var f fixture
	if err := json.Unmarshal(sampleLeague, &f); err != nil {
		log.Fatal("❌ failed to parse sample league: ", err)
	}

	teams := applyRelations(f.Teams, f.RivalPairs, f.DoNotPlayPairs)

	r := rules.Default()
	r.SeasonStart = mustParseDate(f.SeasonStart)
	r.SeasonEnd = mustParseDate(f.SeasonEnd)
	if f.TargetGamesPerTeam > 0 {
		r.TargetGamesPerTeam = f.TargetGamesPerTeam
	}
	r.PriorityWeights = map[string]int{
		"S1_cluster_match":         3,
		"S2_tier_match":            2,
		"S3_rivals_played":         4,
		"S4_home_away_balance":     2,
		"S5_host_school_home":      1,
		"S6_school_clustering":     5,
		"S7_coach_clustering":      3,
		"S8_weeknight_utilization": 1,
	}

	log.Printf("ℹ️  loaded %d teams across %d facilities", len(teams), len(f.Facilities))

	result, report, err := schedule.Generate(teams, f.Facilities, r, nil)
	if err != nil {
		log.Fatal("❌ generation failed: ", err)
	}

	if report.Feasible() {
		log.Printf("✅ schedule generated cleanly: %d games, soft score %.1f", result.Len(), report.SoftScore)
	} else {
		log.Printf("⚠️  schedule generated with %d hard violations, soft score %.1f", len(report.HardViolations), report.SoftScore)
		for _, v := range report.HardViolations {
			log.Printf("   - %s on game %s: %s", v.Rule, v.GameID, v.Reason)
		}
	}

	printByDate(result)
	printTeamStats(report.PerTeamStats)
}

// applyRelations wires rivalPairs/doNotPlayPairs from the fixture onto the
// decoded teams, since those relationships are modeled as in-memory sets,
// not JSON-serializable fields.
func applyRelations(teams []domain.Team, rivalPairs, doNotPlayPairs [][2]string) []domain.Team {
	byID := make(map[string]*domain.Team, len(teams))
	for i := range teams {
		byID[teams[i].ID] = &teams[i]
	}
	for _, pair := range rivalPairs {
		a, b := byID[pair[0]], byID[pair[1]]
		if a != nil && b != nil {
			domain.AddRival(a, b)
		}
	}
	for _, pair := range doNotPlayPairs {
		a, b := byID[pair[0]], byID[pair[1]]
		if a != nil && b != nil {
			domain.AddDoNotPlay(a, b)
		}
	}
	return teams
}

func mustParseDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		log.Fatal("❌ bad date in sample league: ", err)
	}
	return t
}

func printByDate(s *domain.Schedule) {
	log.Println("🔍 games by date:")
	for _, g := range s.Games() {
		log.Printf("   %s  %s vs %s  @ %s court %d (%s)",
			g.Slot.Date.Format("2006-01-02"), g.HomeTeamID, g.AwayTeamID, g.Slot.FacilityID, g.Slot.Court, g.Status)
	}
}

func printTeamStats(stats map[string]constraints.TeamStats) {
	log.Println("ℹ️  per-team stats:")
	for id, st := range stats {
		log.Printf("   %s: games=%d home=%d away=%d doubleheaders=%d shortfall=%d divisions=%v",
			id, st.Games, st.Home, st.Away, st.Doubleheaders, st.ShortfallBy, st.DivisionsSeen)
	}
}
