package canon

import (
	"github.com/roach88/sigil/internal/ir"
)

// Result reports what a Canonicalize call did.
type Result struct {
	// Steps is the number of committed rewrites.
	Steps int
	// Changed reports whether the graph was modified at all.
	Changed bool
}

// Canonicalize rewrites g to a fixed point under the configured rules.
//
// Rules fire in a stable order (fold, flatten, identity, wires) over the
// nodes in graph order, and the whole sweep repeats until a sweep
// commits nothing. Each committed rewrite consumes one quota step; when
// the quota runs out a StepsExceededError is returned and the graph is
// left in the last committed - still verifiable - state.
func Canonicalize(g *ir.Graph, cfg Config) (Result, error) {
	q := newQuota(cfg.MaxSteps)
	res := Result{}
	for {
		changed := false
		for _, n := range snapshot(g) {
			if !inGraph(g, n) {
				continue // removed by an earlier rewrite this sweep
			}
			did := false
			if cfg.Rules.Fold {
				did = foldNode(g, n)
			}
			if !did && cfg.Rules.FlattenCat {
				did = flattenCat(g, n)
			}
			if !did && cfg.Rules.DropIdentity {
				did = dropIdentity(g, n)
			}
			if did {
				changed = true
				res.Changed = true
				err := q.check(g.Name)
				res.Steps = q.current
				if err != nil {
					return res, err
				}
			}
		}
		if cfg.Rules.ForwardWires {
			did, err := forwardWires(g, q)
			if did {
				changed = true
				res.Steps, res.Changed = q.current, true
			}
			if err != nil {
				return res, err
			}
		}
		if !changed {
			return res, nil
		}
	}
}

func inGraph(g *ir.Graph, target *ir.Node) bool {
	for _, n := range g.Nodes {
		if n == target {
			return true
		}
	}
	return false
}
