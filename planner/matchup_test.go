package planner

import (
	"testing"

	"pubgames/leagueschedule/domain"
)

func twoSchools() (map[string]domain.School, map[string]domain.Team) {
	schools := map[string]domain.School{
		"school-a": {
			ID: "school-a", Cluster: "north", Tier: 1,
			TeamsByDivision: map[domain.Division]string{
				domain.DivisionMSBoysJV: "team-a-jv",
				domain.DivisionK1Rec:    "team-a-k1",
			},
		},
		"school-b": {
			ID: "school-b", Cluster: "north", Tier: 1,
			TeamsByDivision: map[domain.Division]string{
				domain.DivisionMSBoysJV: "team-b-jv",
			},
		},
	}
	teams := map[string]domain.Team{
		"team-a-jv": {ID: "team-a-jv", SchoolID: "school-a", Division: domain.DivisionMSBoysJV, CoachID: "coach-1"},
		"team-a-k1": {ID: "team-a-k1", SchoolID: "school-a", Division: domain.DivisionK1Rec},
		"team-b-jv": {ID: "team-b-jv", SchoolID: "school-b", Division: domain.DivisionMSBoysJV, CoachID: "coach-2"},
	}
	return schools, teams
}

func TestPlanOnlyPairsSharedDivisions(t *testing.T) {
	schools, teams := twoSchools()
	matchups := Plan(schools, teams, nil, nil)

	if len(matchups) != 1 {
		t.Fatalf("expected exactly 1 matchup (only MS_BOYS_JV is shared), got %d", len(matchups))
	}
	if len(matchups[0].Games) != 1 {
		t.Errorf("expected the matchup to carry 1 game, got %d", len(matchups[0].Games))
	}
}

func TestPlanIsDeterministic(t *testing.T) {
	schools, teams := twoSchools()
	weights := map[string]int{"S1_cluster_match": 5}

	first := Plan(schools, teams, nil, weights)
	second := Plan(schools, teams, nil, weights)

	if len(first) != len(second) {
		t.Fatalf("expected repeated Plan calls to return the same number of matchups")
	}
	for i := range first {
		if first[i].SchoolAID != second[i].SchoolAID || first[i].SchoolBID != second[i].SchoolBID {
			t.Errorf("expected deterministic ordering at index %d", i)
		}
	}
}

func TestEligibleBlocksFiltersByCapacityAndDivision(t *testing.T) {
	schools, teams := twoSchools()
	matchups := Plan(schools, teams, nil, nil)
	m := matchups[0]

	facilities := map[string]domain.Facility{
		"fac-big":   {ID: "fac-big", CourtCount: 2},
		"fac-small": {ID: "fac-small", CourtCount: 1},
	}
	blocks := []domain.TimeBlock{
		{FacilityID: "fac-big", Slots: []domain.TimeSlot{{}, {}}},
		{FacilityID: "fac-small", Slots: []domain.TimeSlot{{}}},
	}

	eligible := EligibleBlocks(m, blocks, facilities)
	if len(eligible) != 2 {
		t.Errorf("expected both blocks to meet 1-game capacity, got %d", len(eligible))
	}

	empty := []domain.TimeBlock{{FacilityID: "fac-big"}}
	if got := EligibleBlocks(m, empty, facilities); len(got) != 0 {
		t.Errorf("expected a zero-capacity block to be filtered out, got %d", len(got))
	}

	k1 := SchoolMatchup{Games: []MatchupGame{{Division: domain.DivisionK1Rec}}}
	if got := EligibleBlocks(k1, blocks, facilities); len(got) != 0 {
		t.Errorf("expected no standard-rim block to be eligible for a K1_REC game, got %d", len(got))
	}
}
