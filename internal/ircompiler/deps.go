package ircompiler

import (
	"regexp"
	"sort"
)

var identifierPattern = regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*`)

// DepGraph maps each variable name to the set of subscriber ids that must be
// notified when it changes: an elementId (binding or variable-targeting
// event), a groupId (conditional expr references it), or a loop element's id
// (its source is the variable).
type DepGraph struct {
	Subs map[string][]string
}

func newDepGraph() *DepGraph {
	return &DepGraph{Subs: make(map[string][]string)}
}

func (d *DepGraph) add(variable, subscriber string) {
	for _, existing := range d.Subs[variable] {
		if existing == subscriber {
			return
		}
	}
	d.Subs[variable] = append(d.Subs[variable], subscriber)
}

// buildDeps populates the dependency graph per §4.2 "Dependency analysis":
// bindings, variable-targeting event actions, tokenized conditional exprs,
// and loop sources.
func buildDeps(g *Graph) *DepGraph {
	deps := newDepGraph()
	known := make(map[string]bool, len(g.Vars))
	for _, v := range g.Vars {
		known[v.Name] = true
	}

	for _, b := range g.Doc.Bindings {
		if known[b.Variable] {
			deps.add(b.Variable, b.ElementID)
		}
	}

	for _, list := range g.Doc.Events {
		for _, ev := range list {
			target := ev.Action.Target
			if target != "" && known[target] {
				deps.add(target, ev.Target)
			}
		}
	}

	groupIDs := make([]string, 0, len(g.Conditionals))
	for groupID := range g.Conditionals {
		groupIDs = append(groupIDs, groupID)
	}
	sort.Strings(groupIDs)
	for _, groupID := range groupIDs {
		cond := g.Conditionals[groupID]
		for _, branch := range cond.branches() {
			if branch.Element.Control == nil {
				continue
			}
			for _, tok := range identifierPattern.FindAllString(branch.Element.Control.Expr, -1) {
				if known[tok] {
					deps.add(tok, groupID)
				}
			}
		}
	}

	loopIDs := make([]string, 0, len(g.Loops))
	for loopID := range g.Loops {
		loopIDs = append(loopIDs, loopID)
	}
	sort.Strings(loopIDs)
	for _, loopID := range loopIDs {
		loop := g.Loops[loopID]
		if known[loop.Loop.Source] {
			deps.add(loop.Loop.Source, loopID)
		}
	}

	return deps
}

// groupAndLoopSubscribers picks the group/loop subscribers out of a
// variable's subscriber list. Plain element ids (binding targets and
// event-firing elements alike) are excluded — they carry no update function
// of their own to invoke; see bindings.go for how bound elements are
// actually refreshed.
func (g *Graph) groupAndLoopSubscribers(subs []string) (groups []string, loops []string) {
	for _, id := range subs {
		switch {
		case g.Conditionals[id] != nil:
			groups = append(groups, id)
		case g.Loops[id] != nil:
			loops = append(loops, id)
		}
	}
	return
}
