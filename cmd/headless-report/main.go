package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/Stack-Sense/internal/pile"
	"github.com/atotto/clipboard"
)

type runStats struct {
	runIndex int
	seed     int64
	scenario string
	strategy string

	pieces           int
	removals         int
	collapses        int
	fallen           int
	damage           int
	largestCascade   int
	firstCollapseAt  int // removal index, -1 if none
	predictionMisses int // removals whose preview disagreed with the commit
	finalStability   pile.Stability
	kinds            map[string]int // kinds of pieces that fell in cascades
}

func main() {
	var runs int
	var rows int
	var removals int
	var seedBase int64
	var seedStep int64
	var scenario string
	var strategy string
	var copyOut bool

	flag.IntVar(&runs, "runs", 5, "number of headless rounds")
	flag.IntVar(&rows, "rows", 9, "rows in generated piles")
	flag.IntVar(&removals, "removals", 20, "removals per round")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "generated", "scenario name (generated, tower)")
	flag.StringVar(&strategy, "strategy", "random", "removal strategy (random, careful, reckless)")
	flag.BoolVar(&copyOut, "copy", false, "also copy the report to the clipboard")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if removals <= 0 {
		fmt.Println("error: -removals must be > 0")
		return
	}
	if scenario != "generated" && scenario != "tower" {
		fmt.Printf("error: unsupported scenario %q (supported: generated, tower)\n", scenario)
		return
	}
	if _, ok := strategies[strategy]; !ok {
		fmt.Printf("error: unsupported strategy %q (supported: random, careful, reckless)\n", strategy)
		return
	}

	var sb strings.Builder
	out := io.MultiWriter(os.Stdout, &sb)

	fmt.Fprintf(out, "=== Headless Pile Report ===\n")
	fmt.Fprintf(out, "scenario=%s strategy=%s runs=%d removals=%d seed_base=%d seed_step=%d\n\n",
		scenario, strategy, runs, removals, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		tp, err := buildScenario(scenario, rows, seed)
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			return
		}
		stats := runRound(i+1, seed, tp, strategy, removals)
		stats.scenario = scenario
		all = append(all, stats)
		printRun(out, stats)
	}
	printAggregate(out, all)

	if copyOut {
		if err := clipboard.WriteAll(sb.String()); err != nil {
			fmt.Printf("error: copy to clipboard: %v\n", err)
		}
	}
}

// round bundles what a run needs from either scenario source.
type round struct {
	store   *pile.Store
	geom    *pile.Geometry
	manager *pile.CollisionManager
	pred    *pile.Predictor
	log     *pile.EventLog
}

func buildScenario(name string, rows int, seed int64) (*round, error) {
	if name == "tower" {
		tp := pile.NewTestPile(
			pile.WithViewport(1280, 720),
			pile.WithColumn("a", 300, 120, 40, 6),
			pile.WithColumn("b", 420, 120, 40, 6),
			// Ground line is 680; both 6-high columns top out at 440.
			pile.WithRect("bridge", 360, 400, 120, 40),
			pile.WithColumn("c", 700, 80, 40, 8),
		)
		return &round{tp.Store, tp.Geometry, tp.Manager, tp.Predictor, tp.Log}, nil
	}
	store, geom, err := pile.Generate(pile.GenerateConfig{Width: 1280, Height: 720, Rows: rows, Seed: seed})
	if err != nil {
		return nil, err
	}
	events := pile.NewEventLog()
	m := pile.NewCollisionManager(geom, pile.WithEventLog(events))
	m.UpdateCollapseRisks(store.Pieces())
	return &round{store, geom, m, pile.NewPredictor(geom), events}, nil
}

// strategy picks the next piece to remove from the active ones.
type strategy func(r *round, active []*pile.Piece, rng *rand.Rand) *pile.Piece

var strategies = map[string]strategy{
	"random": func(_ *round, active []*pile.Piece, rng *rand.Rand) *pile.Piece {
		return active[rng.Intn(len(active))]
	},
	// careful removes the piece whose preview threatens the fewest others.
	"careful": func(r *round, active []*pile.Piece, _ *rand.Rand) *pile.Piece {
		return pickBy(r, active, func(a, b int) bool { return a < b })
	},
	// reckless goes for the biggest cascade it can see.
	"reckless": func(r *round, active []*pile.Piece, _ *rand.Rand) *pile.Piece {
		return pickBy(r, active, func(a, b int) bool { return a > b })
	},
}

func pickBy(r *round, active []*pile.Piece, better func(a, b int) bool) *pile.Piece {
	var best *pile.Piece
	bestScore := 0
	for _, p := range active {
		score := 0
		for _, a := range r.pred.CalculateAffectedPieces(p, r.store.Pieces()) {
			score += int(a.Risk)
		}
		if best == nil || better(score, bestScore) {
			best, bestScore = p, score
		}
	}
	return best
}

func runRound(runIndex int, seed int64, r *round, strategyName string, removals int) runStats {
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- headless report
	pick := strategies[strategyName]
	rs := runStats{
		runIndex:        runIndex,
		seed:            seed,
		strategy:        strategyName,
		pieces:          r.store.Len(),
		firstCollapseAt: -1,
		kinds:           map[string]int{},
	}
	all := r.store.Pieces()
	for i := 0; i < removals; i++ {
		active := r.store.Active()
		if len(active) == 0 {
			break
		}
		p := pick(r, active, rng)

		predicted := map[*pile.Piece]bool{}
		for _, a := range r.pred.CalculateAffectedPieces(p, all) {
			if a.Risk == pile.RiskWillCollapse {
				predicted[a.Piece] = true
			}
		}

		res := r.manager.HandlePotentialCollapse(p, all)
		rs.removals++
		if len(res.Cascade) != len(predicted) {
			rs.predictionMisses++
		} else {
			for _, c := range res.Cascade {
				if !predicted[c] {
					rs.predictionMisses++
					break
				}
			}
		}
		if len(res.Cascade) == 0 {
			continue
		}
		rs.collapses++
		rs.fallen += len(res.Cascade)
		rs.damage += res.Damage
		if len(res.Cascade) > rs.largestCascade {
			rs.largestCascade = len(res.Cascade)
		}
		if rs.firstCollapseAt < 0 {
			rs.firstCollapseAt = i + 1
		}
		for _, c := range res.Cascade {
			rs.kinds[c.Kind.String()]++
		}
	}
	r.manager.UpdateCollapseRisks(all)
	rs.finalStability = r.manager.CheckStability(all)
	return rs
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(w, "pile: pieces=%d removals=%d remaining=%d\n", rs.pieces, rs.removals, rs.finalStability.TotalPieces)
	fmt.Fprintf(w, "collapse_events: collapses=%d fallen=%d largest=%d first_at=%d damage=%d\n",
		rs.collapses, rs.fallen, rs.largestCascade, rs.firstCollapseAt, rs.damage)
	fmt.Fprintf(w, "fallen_kinds: %s\n", joinCounts(rs.kinds))
	fmt.Fprintf(w, "final_stability: %s\n", rs.finalStability)
	fmt.Fprintf(w, "prediction_misses=%d\n\n", rs.predictionMisses)
}

func printAggregate(w io.Writer, all []runStats) {
	totalCollapses := 0
	totalFallen := 0
	totalDamage := 0
	totalMisses := 0
	largest := 0
	stabilitySum := 0.0
	firstCollapse := make([]int, 0, len(all))
	kinds := map[string]int{}

	for _, rs := range all {
		totalCollapses += rs.collapses
		totalFallen += rs.fallen
		totalDamage += rs.damage
		totalMisses += rs.predictionMisses
		stabilitySum += rs.finalStability.StabilityPercentage
		if rs.largestCascade > largest {
			largest = rs.largestCascade
		}
		if rs.firstCollapseAt >= 0 {
			firstCollapse = append(firstCollapse, rs.firstCollapseAt)
		}
		for k, n := range rs.kinds {
			kinds[k] += n
		}
	}

	fmt.Fprintln(w, "=== Aggregate ===")
	fmt.Fprintf(w, "runs=%d\n", len(all))
	fmt.Fprintf(w, "avg_per_run: collapses=%.1f fallen=%.1f damage=%.1f\n",
		avg(totalCollapses, len(all)), avg(totalFallen, len(all)), avg(totalDamage, len(all)))
	fmt.Fprintf(w, "largest_cascade=%d first_collapse_avg=%s\n", largest, avgString(firstCollapse))
	fmt.Fprintf(w, "avg_final_stability=%.1f%%\n", stabilitySum/float64(max(len(all), 1)))
	fmt.Fprintf(w, "fallen_kinds: %s\n", joinCounts(kinds))
	fmt.Fprintf(w, "prediction_misses=%d\n", totalMisses)
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	return strings.Join(parts, ",")
}
