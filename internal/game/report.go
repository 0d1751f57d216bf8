package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Stack-Sense/internal/pile"
)

// StabilityReport renders the state of a round as plain text, suitable
// for pasting into a bug report.
func StabilityReport(s *Session) string {
	var sb strings.Builder
	removals, collapses := s.Counts()
	st := s.Stability()
	fmt.Fprintf(&sb, "=== Stack Sense report (seed %d, tick %d) ===\n", s.Config().Seed, s.CurrentTick())
	fmt.Fprintf(&sb, "health=%d score=%d removals=%d collapses=%d\n", s.Health(), s.Score(), removals, collapses)
	fmt.Fprintf(&sb, "stability: %s, %d unstable\n", st, st.UnstablePieces)

	tiers := map[pile.Risk]int{}
	var atRisk []string
	for _, p := range s.Pieces() {
		if p.Removed() {
			continue
		}
		tiers[p.Risk()]++
		if p.Risk() >= pile.RiskMedium {
			atRisk = append(atRisk, fmt.Sprintf("%s(%s)", p.ID, p.Risk()))
		}
	}
	for _, r := range []pile.Risk{pile.RiskNone, pile.RiskLow, pile.RiskMedium, pile.RiskHigh} {
		fmt.Fprintf(&sb, "  %-7s %d\n", r, tiers[r])
	}
	sort.Strings(atRisk)
	if len(atRisk) > 0 {
		fmt.Fprintf(&sb, "at risk: %s\n", strings.Join(atRisk, " "))
	}

	sb.WriteString("--- events ---\n")
	sb.WriteString(s.Log().Format())
	return sb.String()
}

// copyReport puts the stability report on the system clipboard.
func copyReport(s *Session) error {
	return clipboard.WriteAll(StabilityReport(s))
}
