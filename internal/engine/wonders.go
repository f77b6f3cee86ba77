package engine

import (
	"sort"

	"github.com/talgya/mini-civ/internal/social"
)

// WonderRegistry records which civilization owns each wonder. A wonder is built
// at most once per game.
type WonderRegistry struct {
	owners map[string]social.CivID
}

// NewWonderRegistry creates an empty registry.
func NewWonderRegistry() *WonderRegistry {
	return &WonderRegistry{owners: make(map[string]social.CivID)}
}

// Claim records civ as the builder of name. Returns false if anyone already owns it.
func (r *WonderRegistry) Claim(name string, civ social.CivID) bool {
	if _, taken := r.owners[name]; taken {
		return false
	}
	r.owners[name] = civ
	return true
}

// Owner returns the civilization that built name.
func (r *WonderRegistry) Owner(name string) (social.CivID, bool) {
	civ, ok := r.owners[name]
	return civ, ok
}

// CountFor returns how many wonders civ owns.
func (r *WonderRegistry) CountFor(civ social.CivID) int {
	n := 0
	for _, c := range r.owners {
		if c == civ {
			n++
		}
	}
	return n
}

// Built returns every built wonder name, sorted.
func (r *WonderRegistry) Built() []string {
	out := make([]string, 0, len(r.owners))
	for name := range r.owners {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// GateFor binds the registry to one civilization for settlement production.
func (r *WonderRegistry) GateFor(civ social.CivID) social.WonderGate {
	return wonderGate{registry: r, civ: civ}
}

type wonderGate struct {
	registry *WonderRegistry
	civ      social.CivID
}

func (w wonderGate) ClaimWonder(name string) bool {
	return w.registry.Claim(name, w.civ)
}
