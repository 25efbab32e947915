package reconcile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/siamvotes/votemerge/pkg/election"
)

// rankGroup identifies one constituency contest for the contiguity check.
type rankGroup struct {
	consID  string
	contest election.ContestType
}

// checkRanks verifies that each constituency contest's ranks form a
// contiguous 1..n sequence. Gaps and repeats produce warnings only; the
// rows themselves are untouched. Groups are reported in first-appearance
// order so repeated runs produce identical diagnostics.
func checkRanks(results []election.ResultRecord) []Diagnostic {
	ranks := make(map[rankGroup][]int)
	var order []rankGroup

	for _, r := range results {
		if r.ConsID == "" || !r.Contest.IsValid() {
			continue
		}
		g := rankGroup{consID: r.ConsID, contest: r.Contest}
		if _, seen := ranks[g]; !seen {
			order = append(order, g)
		}
		ranks[g] = append(ranks[g], r.Rank)
	}

	var diags []Diagnostic
	for _, g := range order {
		missing, repeated := rankIssues(ranks[g])
		if len(missing) == 0 && len(repeated) == 0 {
			continue
		}

		var parts []string
		if len(missing) > 0 {
			parts = append(parts, "missing "+joinInts(missing))
		}
		if len(repeated) > 0 {
			parts = append(parts, "repeated "+joinInts(repeated))
		}
		diags = append(diags, Diagnostic{
			Kind: KindRankGap,
			Key:  Key{ConsID: g.consID},
			Message: fmt.Sprintf("%s contest ranks are not a 1..n sequence: %s",
				g.contest, strings.Join(parts, "; ")),
		})
	}
	return diags
}

// rankIssues returns the ranks absent from the 1..max sequence and the
// ranks that appear more than once. Both nil when the ranks are exactly
// 1..n.
func rankIssues(got []int) (missing, repeated []int) {
	if len(got) == 0 {
		return nil, nil
	}

	counts := make(map[int]int, len(got))
	max := 0
	for _, r := range got {
		if r > max {
			max = r
		}
		counts[r]++
	}

	for i := 1; i <= max; i++ {
		if counts[i] == 0 {
			missing = append(missing, i)
		}
	}
	for r, n := range counts {
		if n > 1 {
			repeated = append(repeated, r)
		}
	}
	sort.Ints(missing)
	sort.Ints(repeated)
	return missing, repeated
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
