// Package schedule is the library's single entry point, wiring the rules,
// slots, constraints, planner, and optimizer packages into the one
// synchronous call described in spec.md §6: Generate(teams, facilities,
// rules, seed?) -> (Schedule, ValidationReport).
package schedule

import (
	"math/rand"

	validator "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"pubgames/leagueschedule/constraints"
	"pubgames/leagueschedule/domain"
	"pubgames/leagueschedule/internal/engineerr"
	"pubgames/leagueschedule/internal/enginelog"
	"pubgames/leagueschedule/optimizer"
	"pubgames/leagueschedule/rules"
)

var validate = validator.New()

// Generate runs the full pipeline against the supplied teams and
// facilities under r, and returns the resulting Schedule plus a
// ValidationReport describing any hard violations, the soft score, and
// per-team stats. It only returns an error for structural problems in the
// input (duplicate ids, an empty facility list, inconsistent rules) — any
// other infeasibility is reported, not raised, per spec.md §7. seed is
// optional; nil derives a seed from the team/facility counts so a caller
// that never passes one still gets a deterministic run for a fixed input.
func Generate(teams []domain.Team, facilities []domain.Facility, r rules.Rules, seed *int64) (*domain.Schedule, *constraints.ValidationReport, error) {
	log := enginelog.New("schedule")

	if err := validateInput(teams, facilities, r); err != nil {
		log.Error("input validation failed", zap.Error(err))
		return nil, nil, err
	}

	teamsByID := make(map[string]domain.Team, len(teams))
	for _, t := range teams {
		teamsByID[t.ID] = t
	}
	facilitiesByID := make(map[string]domain.Facility, len(facilities))
	for _, f := range facilities {
		facilitiesByID[f.ID] = f
	}
	schools := deriveSchools(teams)

	s := seedValue(seed, len(teams), len(facilities))
	rng := rand.New(rand.NewSource(s))

	log.Info("starting generation run", zap.Int("teams", len(teams)), zap.Int("facilities", len(facilities)))

	result := optimizer.Run(teamsByID, schools, facilitiesByID, r, rng)

	ctx := constraints.Context{Teams: teamsByID, Schools: schools, Facilities: facilitiesByID, Rules: r}
	report := constraints.NewEvaluator(ctx).Validate(result.Schedule)
	applyShortfalls(&report, result.Shortfalls)

	if report.Feasible() {
		log.Success("generation complete", zap.Int("games", result.Schedule.Len()))
	} else {
		log.Warn("generation complete with hard violations", zap.Int("violations", len(report.HardViolations)))
	}

	return result.Schedule, &report, nil
}

// validateInput checks the structural invariants spec.md §7 requires
// before any search begins: struct-tag validation via validator/v10 for
// each entity, plus the cross-entity checks the tag language can't
// express (duplicate ids, two teams of one school in the same division,
// a team referencing itself in rivals or do_not_play, an empty facility
// list).
func validateInput(teams []domain.Team, facilities []domain.Facility, r rules.Rules) error {
	if len(teams) == 0 {
		return engineerr.New(engineerr.KindInvalidInput, "teams must not be empty")
	}
	if len(facilities) == 0 {
		return engineerr.New(engineerr.KindInvalidInput, "facilities must not be empty")
	}

	seenTeam := make(map[string]bool, len(teams))
	seenSchoolDivision := make(map[string]bool, len(teams))
	for _, t := range teams {
		if err := validate.Struct(t); err != nil {
			return engineerr.Wrap(err, engineerr.KindInvalidInput, "team failed validation: "+t.ID)
		}
		if seenTeam[t.ID] {
			return engineerr.Newf(engineerr.KindInvalidInput, "duplicate team id %q", t.ID)
		}
		seenTeam[t.ID] = true
		schoolDivision := t.SchoolID + "|" + string(t.Division)
		if seenSchoolDivision[schoolDivision] {
			return engineerr.Newf(engineerr.KindInvalidInput, "school %q fields more than one team in division %s", t.SchoolID, t.Division)
		}
		seenSchoolDivision[schoolDivision] = true
		if t.IsRival(t.ID) || t.IsDoNotPlay(t.ID) {
			return engineerr.Newf(engineerr.KindInvalidInput, "team %q lists itself as rival or do_not_play", t.ID)
		}
	}

	seenFacility := make(map[string]bool, len(facilities))
	for _, f := range facilities {
		if err := validate.Struct(f); err != nil {
			return engineerr.Wrap(err, engineerr.KindInvalidInput, "facility failed validation: "+f.ID)
		}
		if seenFacility[f.ID] {
			return engineerr.Newf(engineerr.KindInvalidInput, "duplicate facility id %q", f.ID)
		}
		seenFacility[f.ID] = true
	}

	return r.Validate()
}

// deriveSchools reconstructs one domain.School per distinct SchoolID seen
// across teams. A school's cluster and tier are read off its first team
// (spec.md §3 keeps these in sync at the loader level; this module takes
// teams as the source of truth since no separate school feed is part of
// the Generate call surface).
func deriveSchools(teams []domain.Team) map[string]domain.School {
	out := map[string]domain.School{}
	for _, t := range teams {
		sc, ok := out[t.SchoolID]
		if !ok {
			sc = domain.School{
				ID:              t.SchoolID,
				Cluster:         t.Cluster,
				Tier:            t.Tier,
				TeamsByDivision: map[domain.Division]string{},
			}
		}
		sc.TeamsByDivision[t.Division] = t.ID
		out[t.SchoolID] = sc
	}
	return out
}

// applyShortfalls folds the optimizer's per-team shortfall bookkeeping
// into the report's per-team stats, in case the evaluator's own games-
// played count ever diverges from what stage B recorded mid-run (it
// shouldn't, but the report should reflect whichever is more current).
func applyShortfalls(report *constraints.ValidationReport, shortfalls map[string]int) {
	if report.PerTeamStats == nil {
		return
	}
	for teamID, short := range shortfalls {
		if short <= 0 {
			continue
		}
		stat := report.PerTeamStats[teamID]
		if stat.ShortfallBy < short {
			stat.ShortfallBy = short
		}
		report.PerTeamStats[teamID] = stat
	}
}

// seedValue resolves the optional seed, falling back to a value derived
// from the input sizes so a caller who omits it still gets the same
// schedule back for the same input on every run.
func seedValue(seed *int64, teamCount, facilityCount int) int64 {
	if seed != nil {
		return *seed
	}
	return int64(teamCount)*1_000_003 + int64(facilityCount)
}
