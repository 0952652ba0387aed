package schedule

import (
	"testing"
	"time"

	"pubgames/leagueschedule/domain"
	"pubgames/leagueschedule/internal/engineerr"
	"pubgames/leagueschedule/rules"
)

func minimalFixture() ([]domain.Team, []domain.Facility, rules.Rules) {
	teams := []domain.Team{
		{ID: "t-a1", SchoolID: "school-a", Division: domain.DivisionMSBoysJV, Tier: 1},
		{ID: "t-a2", SchoolID: "school-a", Division: domain.DivisionESBoysComp, Tier: 1},
		{ID: "t-b1", SchoolID: "school-b", Division: domain.DivisionMSBoysJV, Tier: 1},
		{ID: "t-b2", SchoolID: "school-b", Division: domain.DivisionESBoysComp, Tier: 1},
	}
	facilities := []domain.Facility{
		{ID: "fac-1", Name: "Main Gym", CourtCount: 1},
	}
	start, _ := time.Parse("2006-01-02", "2025-09-01") // Monday
	end, _ := time.Parse("2006-01-02", "2025-09-12")   // Friday, 10 weekdays inclusive
	r := rules.Default()
	r.SeasonStart = start
	r.SeasonEnd = end
	r.TargetGamesPerTeam = 4
	return teams, facilities, r
}

func TestGenerateMinimalFeasibleScenario(t *testing.T) {
	teams, facilities, r := minimalFixture()

	sched, report, err := Generate(teams, facilities, r, nil)
	if err != nil {
		t.Fatalf("expected no error for a structurally valid minimal scenario, got %v", err)
	}
	if sched == nil {
		t.Fatal("expected a non-nil schedule")
	}
	if report == nil {
		t.Fatal("expected a non-nil validation report")
	}
	if report.PerTeamStats == nil {
		t.Fatal("expected per-team stats to be populated")
	}
	for _, team := range teams {
		stat, ok := report.PerTeamStats[team.ID]
		if !ok {
			t.Errorf("expected per-team stats for %s", team.ID)
			continue
		}
		if stat.Games == 0 {
			t.Errorf("expected %s to be scheduled at least one game in a feasible minimal scenario", team.ID)
		}
	}
}

func TestGenerateIsDeterministicForAFixedSeed(t *testing.T) {
	teams, facilities, r := minimalFixture()
	seed := int64(42)

	sched1, _, err := Generate(teams, facilities, r, &seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sched2, _, err := Generate(teams, facilities, r, &seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sched1.Len() != sched2.Len() {
		t.Fatalf("expected two runs with the same seed to produce the same number of games, got %d and %d", sched1.Len(), sched2.Len())
	}
	g1, g2 := sched1.Games(), sched2.Games()
	for i := range g1 {
		if g1[i].ID != g2[i].ID {
			t.Errorf("expected game %d id to match between runs (determinism requires byte-for-byte ids): %q vs %q", i, g1[i].ID, g2[i].ID)
		}
		if g1[i].HomeTeamID != g2[i].HomeTeamID || g1[i].AwayTeamID != g2[i].AwayTeamID {
			t.Errorf("expected game %d to match between runs: %+v vs %+v", i, g1[i], g2[i])
		}
		if !g1[i].Slot.Date.Equal(g2[i].Slot.Date) || !g1[i].Slot.Start.Equal(g2[i].Slot.Start) || g1[i].Slot.FacilityID != g2[i].Slot.FacilityID || g1[i].Slot.Court != g2[i].Slot.Court {
			t.Errorf("expected game %d slot to match between runs: %+v vs %+v", i, g1[i].Slot, g2[i].Slot)
		}
	}
}

func TestGenerateRejectsEmptyTeams(t *testing.T) {
	_, facilities, r := minimalFixture()
	_, _, err := Generate(nil, facilities, r, nil)
	if err == nil {
		t.Fatal("expected an error for an empty team list")
	}
	if engineerr.KindOf(err) != engineerr.KindInvalidInput {
		t.Errorf("expected KindInvalidInput, got %v", engineerr.KindOf(err))
	}
}

func TestGenerateRejectsEmptyFacilities(t *testing.T) {
	teams, _, r := minimalFixture()
	_, _, err := Generate(teams, nil, r, nil)
	if err == nil {
		t.Fatal("expected an error for an empty facility list")
	}
	if engineerr.KindOf(err) != engineerr.KindInvalidInput {
		t.Errorf("expected KindInvalidInput, got %v", engineerr.KindOf(err))
	}
}

func TestGenerateRejectsDuplicateTeamID(t *testing.T) {
	teams, facilities, r := minimalFixture()
	teams = append(teams, teams[0])
	_, _, err := Generate(teams, facilities, r, nil)
	if err == nil {
		t.Fatal("expected an error for a duplicate team id")
	}
}

func TestGenerateRejectsSelfRival(t *testing.T) {
	teams, facilities, r := minimalFixture()
	teams[0].Rivals = map[string]struct{}{teams[0].ID: {}}
	_, _, err := Generate(teams, facilities, r, nil)
	if err == nil {
		t.Fatal("expected an error when a team lists itself as a rival")
	}
}

func TestGenerateRejectsInvalidRules(t *testing.T) {
	teams, facilities, r := minimalFixture()
	r.SeasonEnd = r.SeasonStart.Add(-24 * time.Hour)
	_, _, err := Generate(teams, facilities, r, nil)
	if err == nil {
		t.Fatal("expected an error when season_end precedes season_start")
	}
	if engineerr.KindOf(err) != engineerr.KindInvalidInput {
		t.Errorf("expected KindInvalidInput, got %v", engineerr.KindOf(err))
	}
}
