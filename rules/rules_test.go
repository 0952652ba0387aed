package rules

import (
	"testing"
	"time"

	"pubgames/leagueschedule/internal/engineerr"
)

func TestDefaultPassesValidate(t *testing.T) {
	r := Default()
	r.SeasonStart = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	r.SeasonEnd = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	if err := r.Validate(); err != nil {
		t.Errorf("expected default rules with a valid season window to validate, got %v", err)
	}
}

func TestValidateRejectsInvertedSeason(t *testing.T) {
	r := Default()
	r.SeasonStart = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	r.SeasonEnd = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	err := r.Validate()
	if err == nil {
		t.Fatal("expected an error for season_end before season_start")
	}
	if engineerr.KindOf(err) != engineerr.KindInvalidInput {
		t.Errorf("expected KindInvalidInput, got %v", engineerr.KindOf(err))
	}
}

func TestValidateRejectsNegativeWeight(t *testing.T) {
	r := Default()
	r.SeasonStart = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	r.SeasonEnd = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	r.PriorityWeights = map[string]int{"S1_cluster_match": -1}

	if err := r.Validate(); err == nil {
		t.Error("expected a negative priority weight to fail validation")
	}
}

func TestWeightReturnsZeroWhenUnconfigured(t *testing.T) {
	r := Default()
	if got := r.Weight("S9_does_not_exist"); got != 0 {
		t.Errorf("expected 0 for an unconfigured weight, got %d", got)
	}
}

func TestIsHoliday(t *testing.T) {
	r := Default()
	r.Holidays = map[string]struct{}{"2025-12-25": {}}
	christmas := time.Date(2025, 12, 25, 14, 0, 0, 0, time.UTC)
	boxingDay := time.Date(2025, 12, 26, 14, 0, 0, 0, time.UTC)

	if !r.IsHoliday(christmas) {
		t.Error("expected 2025-12-25 to be recognized as a holiday")
	}
	if r.IsHoliday(boxingDay) {
		t.Error("did not expect 2025-12-26 to be recognized as a holiday")
	}
}
