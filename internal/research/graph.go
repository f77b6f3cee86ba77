// Package research tracks technologies, their prerequisites, and a civilization's
// single-slot research progress.
package research

import "iter"

// Technology is a named research milestone. Only Researched changes after creation.
type Technology struct {
	Name          string   `json:"name" yaml:"name"`
	Cost          int      `json:"cost" yaml:"cost"`
	Prerequisites []string `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty"`
	Researched    bool     `json:"researched" yaml:"-"`
}

// Graph holds one civilization's copy of the technology catalog.
type Graph struct {
	techs    map[string]*Technology
	order    []string // catalog insertion order
	current  *Technology
	progress int
}

// NewGraph builds a graph from catalog entries, copying them so each civilization
// researches independently. Later duplicates of a name are ignored.
func NewGraph(catalog []Technology) *Graph {
	g := &Graph{techs: make(map[string]*Technology, len(catalog))}
	for _, t := range catalog {
		if _, dup := g.techs[t.Name]; dup {
			continue
		}
		tech := &Technology{
			Name:          t.Name,
			Cost:          t.Cost,
			Prerequisites: append([]string(nil), t.Prerequisites...),
		}
		g.techs[t.Name] = tech
		g.order = append(g.order, t.Name)
	}
	return g
}

// BeginResearch makes name the in-progress technology and zeroes progress.
// Returns false, changing nothing, if name is unknown, already researched,
// or has an unresearched prerequisite.
func (g *Graph) BeginResearch(name string) bool {
	t, ok := g.techs[name]
	if !ok || t.Researched || !g.prerequisitesMet(t) {
		return false
	}
	g.current = t
	g.progress = 0
	return true
}

// AddResearchPoints credits n points to the in-progress technology. Completing it
// clears the slot; points beyond the cost are discarded. Returns the technology
// completed by this call, or nil.
func (g *Graph) AddResearchPoints(n int) *Technology {
	if g.current == nil || n < 0 {
		return nil
	}
	g.progress += n
	if g.progress < g.current.Cost {
		return nil
	}
	done := g.current
	done.Researched = true
	g.current = nil
	g.progress = 0
	return done
}

// Available yields, in catalog order, every unresearched technology whose
// prerequisites are all researched. Each iteration reads the current state.
func (g *Graph) Available() iter.Seq[*Technology] {
	return func(yield func(*Technology) bool) {
		for _, name := range g.order {
			t := g.techs[name]
			if t.Researched || !g.prerequisitesMet(t) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// BeginFirstAvailable starts the first available technology in catalog order.
// Returns the name started, or "" when nothing is available.
func (g *Graph) BeginFirstAvailable() string {
	for t := range g.Available() {
		if g.BeginResearch(t.Name) {
			return t.Name
		}
	}
	return ""
}

// IsResearched reports whether name has been researched. Unknown names are not.
func (g *Graph) IsResearched(name string) bool {
	t, ok := g.techs[name]
	return ok && t.Researched
}

// Current returns the in-progress technology, or nil.
func (g *Graph) Current() *Technology {
	return g.current
}

// CurrentName returns the in-progress technology name, or "" when idle.
func (g *Graph) CurrentName() string {
	if g.current == nil {
		return ""
	}
	return g.current.Name
}

// Progress returns points accumulated towards the in-progress technology.
func (g *Graph) Progress() int {
	return g.progress
}

// Lookup returns the technology with the given name.
func (g *Graph) Lookup(name string) (*Technology, bool) {
	t, ok := g.techs[name]
	return t, ok
}

// All yields every technology in catalog order.
func (g *Graph) All() iter.Seq[*Technology] {
	return func(yield func(*Technology) bool) {
		for _, name := range g.order {
			if !yield(g.techs[name]) {
				return
			}
		}
	}
}

// ResearchedCount returns how many technologies are complete.
func (g *Graph) ResearchedCount() int {
	n := 0
	for _, t := range g.techs {
		if t.Researched {
			n++
		}
	}
	return n
}

// Len returns the number of technologies in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}

func (g *Graph) prerequisitesMet(t *Technology) bool {
	for _, p := range t.Prerequisites {
		pre, ok := g.techs[p]
		if !ok || !pre.Researched {
			return false
		}
	}
	return true
}
