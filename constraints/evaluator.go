package constraints

import "pubgames/leagueschedule/domain"

// Evaluator holds the full H1-H10/S1-S8 registry and is the single point
// every other package goes through to check or score a schedule.
type Evaluator struct {
	hard []HardConstraint
	soft []SoftConstraint
	ctx  Context
}

// NewEvaluator builds an Evaluator bound to ctx for the duration of one
// generation run.
func NewEvaluator(ctx Context) *Evaluator {
	return &Evaluator{hard: HardConstraints(), soft: SoftConstraints(), ctx: ctx}
}

// Delta reports whether candidate g may be admitted into s (all hard
// rules pass) without mutating s. Callers that accept the candidate are
// responsible for calling s.AddGame afterward.
func (e *Evaluator) Delta(s *domain.Schedule, g domain.Game) (hardOK bool, reason string) {
	for _, rule := range e.hard {
		if ok, why := rule.Check(s, e.ctx, g); !ok {
			return false, rule.Name() + ": " + why
		}
	}
	return true, ""
}

// SoftScore returns the weighted sum of every soft constraint's score
// against the current state of s, useful for comparing two candidate
// placements without a full Validate pass.
func (e *Evaluator) SoftScore(s *domain.Schedule) float64 {
	total := 0.0
	for _, rule := range e.soft {
		w := e.ctx.Rules.Weight(rule.Key())
		total += float64(w) * rule.Score(s, e.ctx)
	}
	return total
}

// Validate replays every game already in s through the same hard-rule
// checks used at placement time, recording any violation, then scores
// the finished schedule's soft constraints. Because Check is stateless
// given (s, ctx, g), replaying in canonical order against the
// progressively-built "replay" schedule reproduces exactly what
// admission would have decided — any violation found here means a
// relaxation tier let a rule slide (spec.md §4.5), not a bug in
// Validate itself.
func (e *Evaluator) Validate(s *domain.Schedule) ValidationReport {
	replay := domain.NewSchedule()
	var violations []Violation

	for _, g := range s.Games() {
		for _, rule := range e.hard {
			if ok, why := rule.Check(replay, e.ctx, g); !ok {
				violations = append(violations, Violation{Rule: rule.Name(), GameID: g.ID, Reason: why})
			}
		}
		replay.AddGame(g)
	}

	breakdown := make(map[string]float64, len(e.soft))
	total := 0.0
	for _, rule := range e.soft {
		score := rule.Score(s, e.ctx)
		breakdown[rule.Key()] = score
		total += float64(e.ctx.Rules.Weight(rule.Key())) * score
	}

	return ValidationReport{
		HardViolations:   violations,
		SoftScore:        total,
		SoftBreakdown:    breakdown,
		PerTeamStats:     BuildTeamStats(s, e.ctx.Teams, e.ctx.Rules.TargetGamesPerTeam),
		NearHolidayGames: BuildHolidayProximity(s, e.ctx.Rules.Holidays),
	}
}
