// Package optimizer implements the two-stage optimizer from spec.md
// §4.5: stage A is a CP-style maximizer (here, a simulated-annealing
// search over block assignments, grounded on
// luccasniccolas177-timetabling-udp's Metropolis-criterion SA pass) and
// stage B is a progressive greedy fill with explicit relaxation tiers,
// grounded on the fewest-load-first assignment idiom of noah-isme's
// schedulerState.
package optimizer

import (
	"math"
	"math/rand"
	"sort"
	"strconv"
	"sync"

	"github.com/panjf2000/ants/v2"

	"pubgames/leagueschedule/constraints"
	"pubgames/leagueschedule/domain"
	"pubgames/leagueschedule/planner"
)

const (
	stageAWorkers     = 4
	stageABatchSize   = 6
	stageAInitialTemp = 50.0
	stageACoolingRate = 0.995
	// stageAIterationsPerBudgetSecond scales the annealing pass's
	// iteration count off CPTimeBudgetSeconds without ever reading the
	// wall clock: a run with a fixed seed must do the same number of
	// rng draws every time regardless of the machine it runs on
	// (spec.md §5, §8.9), so "budget" becomes an iteration count instead
	// of a deadline.
	stageAIterationsPerBudgetSecond = 200
)

// StageAResult is what stage A hands to stage B: the schedule built so
// far and the matchups its seeding pass could not place.
type StageAResult struct {
	Schedule *domain.Schedule
	Unplaced []planner.SchoolMatchup
}

// placement maps a matchup's index (in the caller's matchups slice) to
// the block it currently occupies. Matchups absent from the map are
// unplaced.
type placement map[int]domain.TimeBlock

// RunStageA seeds a schedule by walking matchups in planner rank order
// and greedily claiming the best eligible, still-free block for each,
// then improves that seed with a simulated-annealing pass over block
// reassignments that runs cpTimeBudgetSeconds *
// stageAIterationsPerBudgetSecond iterations (no wall-clock deadline). The annealing
// loop's neighbor evaluations run across a small worker pool (ants) —
// an internal implementation detail never observed by the caller, since
// every batch is collected and applied in a fixed, seed-deterministic
// order (spec.md §5).
func RunStageA(matchups []planner.SchoolMatchup, blocks []domain.TimeBlock, facilities map[string]domain.Facility, ctx constraints.Context, cpTimeBudgetSeconds int, rng *rand.Rand) StageAResult {
	ev := constraints.NewEvaluator(ctx)
	place := placement{}
	used := map[string]bool{}

	for i, m := range matchups {
		for _, b := range planner.EligibleBlocks(m, blocks, facilities) {
			key := blockKey(b)
			if used[key] {
				continue
			}
			if schedule := rebuildOne(matchups, place, ev); tryPlace(schedule, ev, m, b) {
				place[i] = b
				used[key] = true
				break
			}
		}
	}

	schedule := anneal(matchups, place, blocks, facilities, ev, cpTimeBudgetSeconds, rng)

	var unplaced []planner.SchoolMatchup
	for i, m := range matchups {
		if _, ok := place[i]; !ok {
			unplaced = append(unplaced, m)
		}
	}
	return StageAResult{Schedule: schedule, Unplaced: unplaced}
}

func blockKey(b domain.TimeBlock) string {
	return b.FacilityID + "|" + b.Date.Format("2006-01-02") + "|" + strconv.Itoa(b.Court)
}

// tryPlace attempts to add every game in m, drawing consecutive slots
// from b, to schedule. It validates each game against a disposable clone
// before committing anything, so a mid-matchup hard-constraint failure
// never leaves a partial matchup behind.
func tryPlace(schedule *domain.Schedule, ev *constraints.Evaluator, m planner.SchoolMatchup, b domain.TimeBlock) bool {
	if len(m.Games) > len(b.Slots) {
		return false
	}
	trial := schedule.Clone()
	games := make([]domain.Game, 0, len(m.Games))
	for i, mg := range m.Games {
		g := domain.NewGame(mg.TeamAID, mg.TeamBID, mg.Division, b.Slots[i])
		g.IsDoubleheader = trial.PlayedOnDate(g.HomeTeamID, g.Slot.Date) || trial.PlayedOnDate(g.AwayTeamID, g.Slot.Date)
		ok, _ := ev.Delta(trial, g)
		if !ok {
			return false
		}
		trial.AddGame(g)
		games = append(games, g)
	}
	for _, g := range games {
		schedule.AddGame(g)
	}
	return true
}

// rebuildOne replays the current placement deterministically into a
// fresh schedule; used before attempting a new matchup so tryPlace sees
// every already-committed game.
func rebuildOne(matchups []planner.SchoolMatchup, place placement, ev *constraints.Evaluator) *domain.Schedule {
	schedule := domain.NewSchedule()
	for i, m := range matchups {
		b, ok := place[i]
		if !ok {
			continue
		}
		tryPlace(schedule, ev, m, b)
	}
	return schedule
}

type move struct {
	idx      int
	newBlock domain.TimeBlock
	swapWith int // -1 when not a swap
}

// anneal runs simulated annealing over the placement map, proposing
// block reassignments and accepting or rejecting them with the
// Metropolis criterion against the schedule's weighted soft score.
func anneal(matchups []planner.SchoolMatchup, place placement, blocks []domain.TimeBlock, facilities map[string]domain.Facility, ev *constraints.Evaluator, cpTimeBudgetSeconds int, rng *rand.Rand) *domain.Schedule {
	placedIdx := make([]int, 0, len(place))
	for i := range place {
		placedIdx = append(placedIdx, i)
	}
	sort.Ints(placedIdx)
	if len(placedIdx) == 0 {
		return domain.NewSchedule()
	}

	current := rebuildOne(matchups, place, ev)
	currentScore := ev.SoftScore(current)
	temp := stageAInitialTemp

	pool, err := ants.NewPool(stageAWorkers)
	if err != nil {
		return current
	}
	defer pool.Release()

	// Every placed matchup fits in current; a move whose rebuild loses a
	// game broke a hard constraint and is never accepted.
	want := current.Len()

	maxIterations := cpTimeBudgetSeconds * stageAIterationsPerBudgetSecond
	for iter := 0; iter < maxIterations; iter++ {
		batch := make([]move, stageABatchSize)
		for b := range batch {
			batch[b] = randomMove(placedIdx, blocks, facilities, matchups, place, rng)
		}

		scores := make([]float64, stageABatchSize)
		var wg sync.WaitGroup
		for b := range batch {
			b := b
			wg.Add(1)
			submitErr := pool.Submit(func() {
				defer wg.Done()
				trial := rebuildOne(matchups, applyMove(place, batch[b]), ev)
				if trial.Len() < want {
					scores[b] = math.Inf(-1)
					return
				}
				scores[b] = ev.SoftScore(trial)
			})
			if submitErr != nil {
				wg.Done()
			}
		}
		wg.Wait()

		bestIdx, bestScore := 0, math.Inf(-1)
		for i, s := range scores {
			if s > bestScore {
				bestIdx, bestScore = i, s
			}
		}

		delta := bestScore - currentScore
		accept := delta > 0
		if !accept && temp > 1e-6 {
			accept = rng.Float64() < math.Exp(delta/temp)
		}
		if accept {
			place = applyMove(place, batch[bestIdx])
			current = rebuildOne(matchups, place, ev)
			currentScore = ev.SoftScore(current)
		}
		temp *= stageACoolingRate
	}
	return current
}

func randomMove(placedIdx []int, blocks []domain.TimeBlock, facilities map[string]domain.Facility, matchups []planner.SchoolMatchup, place placement, rng *rand.Rand) move {
	idx := placedIdx[rng.Intn(len(placedIdx))]
	eligible := planner.EligibleBlocks(matchups[idx], blocks, facilities)
	if len(eligible) == 0 {
		return move{idx: idx, newBlock: place[idx], swapWith: -1}
	}
	newBlock := eligible[rng.Intn(len(eligible))]
	return move{idx: idx, newBlock: newBlock, swapWith: -1}
}

func applyMove(place placement, m move) placement {
	trial := make(placement, len(place))
	for k, v := range place {
		trial[k] = v
	}
	trial[m.idx] = m.newBlock
	return trial
}
