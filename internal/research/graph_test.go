package research

import (
	"errors"
	"iter"
	"slices"
	"testing"
)

func names(seq iter.Seq[*Technology]) []string {
	var out []string
	for t := range seq {
		out = append(out, t.Name)
	}
	return out
}

func TestPotteryCompletes(t *testing.T) {
	g := NewGraph(DefaultCatalog())

	if !g.BeginResearch("Pottery") {
		t.Fatal("BeginResearch(Pottery) = false, want true")
	}
	done := g.AddResearchPoints(20)
	if done == nil || done.Name != "Pottery" {
		t.Fatalf("AddResearchPoints(20) completed %v, want Pottery", done)
	}
	if g.Current() != nil {
		t.Errorf("Current() = %v, want nil", g.Current())
	}
	if !g.IsResearched("Pottery") {
		t.Error("Pottery not researched")
	}
	if g.Progress() != 0 {
		t.Errorf("Progress() = %d, want 0", g.Progress())
	}
}

func TestPrerequisiteGate(t *testing.T) {
	g := NewGraph(DefaultCatalog())

	if g.BeginResearch("Horseback Riding") {
		t.Fatal("Horseback Riding started without Wheel")
	}
	if g.Current() != nil {
		t.Fatal("failed BeginResearch mutated the slot")
	}

	if !g.BeginResearch("Wheel") {
		t.Fatal("BeginResearch(Wheel) = false")
	}
	g.AddResearchPoints(30)

	if !g.BeginResearch("Horseback Riding") {
		t.Fatal("Horseback Riding blocked after Wheel")
	}
	if g.CurrentName() != "Horseback Riding" {
		t.Errorf("CurrentName() = %q", g.CurrentName())
	}
}

func TestBeginResearchRejects(t *testing.T) {
	g := NewGraph(DefaultCatalog())
	g.BeginResearch("Pottery")
	g.AddResearchPoints(20)

	g.BeginResearch("Alphabet")
	g.AddResearchPoints(5)

	tests := []string{"Gunpowder", "Pottery", "Philosophy"}
	for _, name := range tests {
		if g.BeginResearch(name) {
			t.Errorf("BeginResearch(%q) = true, want false", name)
		}
		if g.CurrentName() != "Alphabet" || g.Progress() != 5 {
			t.Errorf("BeginResearch(%q) mutated state: %q/%d", name, g.CurrentName(), g.Progress())
		}
	}
}

func TestBeginResearchResetsProgress(t *testing.T) {
	g := NewGraph(DefaultCatalog())
	g.BeginResearch("Alphabet")
	g.AddResearchPoints(15)
	if !g.BeginResearch("Masonry") {
		t.Fatal("switching research failed")
	}
	if g.Progress() != 0 {
		t.Errorf("Progress() = %d after switch, want 0", g.Progress())
	}
}

func TestAddResearchPointsIdle(t *testing.T) {
	g := NewGraph(DefaultCatalog())
	if done := g.AddResearchPoints(100); done != nil {
		t.Fatalf("idle graph completed %v", done)
	}
	if g.ResearchedCount() != 0 || g.Progress() != 0 {
		t.Error("idle AddResearchPoints changed state")
	}
}

func TestProgressMonotonicUntilCompletion(t *testing.T) {
	g := NewGraph(DefaultCatalog())
	g.BeginResearch("Wheel") // cost 30

	last := 0
	for _, n := range []int{0, 7, 3, 0, 11} {
		g.AddResearchPoints(n)
		if g.Progress() < last {
			t.Fatalf("progress decreased from %d to %d", last, g.Progress())
		}
		last = g.Progress()
	}
	if last != 21 {
		t.Fatalf("progress = %d, want 21", last)
	}

	// Negative credit is ignored.
	g.AddResearchPoints(-5)
	if g.Progress() != 21 {
		t.Errorf("negative points changed progress to %d", g.Progress())
	}

	// Overflow is discarded, not carried.
	if done := g.AddResearchPoints(50); done == nil {
		t.Fatal("expected completion")
	}
	if g.Progress() != 0 {
		t.Errorf("excess carried: progress = %d", g.Progress())
	}
	g.BeginResearch("Horseback Riding")
	if g.Progress() != 0 {
		t.Errorf("new research started with %d points", g.Progress())
	}
}

func TestAvailableOrderAndRestart(t *testing.T) {
	g := NewGraph(DefaultCatalog())

	want := []string{"Pottery", "Alphabet", "Bronze Working", "Ceremonial Burial", "Masonry", "Wheel"}
	if got := names(g.Available()); !slices.Equal(got, want) {
		t.Fatalf("Available() = %v, want %v", got, want)
	}

	seq := g.Available()
	g.BeginResearch("Alphabet")
	g.AddResearchPoints(20)

	// The same sequence value reflects the new state on the next iteration.
	got := names(seq)
	if slices.Contains(got, "Alphabet") {
		t.Error("researched technology still available")
	}
	if !slices.Contains(got, "Writing") || !slices.Contains(got, "Code of Laws") {
		t.Errorf("unlocked technologies missing: %v", got)
	}

	// Early break is honoured.
	count := 0
	for range g.Available() {
		count++
		break
	}
	if count != 1 {
		t.Errorf("iterated %d times after break", count)
	}
}

func TestBeginFirstAvailable(t *testing.T) {
	g := NewGraph([]Technology{{Name: "A", Cost: 1}})
	if got := g.BeginFirstAvailable(); got != "A" {
		t.Fatalf("BeginFirstAvailable() = %q, want A", got)
	}
	g.AddResearchPoints(1)
	if got := g.BeginFirstAvailable(); got != "" {
		t.Errorf("BeginFirstAvailable() = %q on exhausted tree", got)
	}
}

func TestGraphsAreIndependent(t *testing.T) {
	catalog := DefaultCatalog()
	a := NewGraph(catalog)
	b := NewGraph(catalog)

	a.BeginResearch("Pottery")
	a.AddResearchPoints(20)

	if b.IsResearched("Pottery") {
		t.Error("research leaked between graphs")
	}
	if catalog[0].Researched {
		t.Error("research leaked into the catalog")
	}
}

// Property: across the default tree, every successful BeginResearch happens only
// with all prerequisites researched.
func TestBeginResearchRequiresPrerequisites(t *testing.T) {
	g := NewGraph(DefaultCatalog())
	for step := 0; step < g.Len()*2; step++ {
		for tech := range g.All() {
			ok := g.BeginResearch(tech.Name)
			met := true
			for _, p := range tech.Prerequisites {
				if !g.IsResearched(p) {
					met = false
				}
			}
			if ok && !met {
				t.Fatalf("%s started with unmet prerequisites", tech.Name)
			}
			if ok {
				g.AddResearchPoints(tech.Cost)
			}
		}
	}
	if g.ResearchedCount() != g.Len() {
		t.Errorf("researched %d of %d", g.ResearchedCount(), g.Len())
	}
}

func TestValidateCatalog(t *testing.T) {
	order, err := ValidateCatalog(DefaultCatalog())
	if err != nil {
		t.Fatalf("default catalog invalid: %v", err)
	}
	pos := make(map[string]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	for _, tech := range DefaultCatalog() {
		for _, p := range tech.Prerequisites {
			if pos[p] >= pos[tech.Name] {
				t.Errorf("%s ordered before its prerequisite %s", tech.Name, p)
			}
		}
	}
}

func TestValidateCatalogErrors(t *testing.T) {
	tests := []struct {
		name    string
		catalog []Technology
		want    error
	}{
		{
			name:    "cycle",
			catalog: []Technology{{Name: "A", Cost: 1, Prerequisites: []string{"B"}}, {Name: "B", Cost: 1, Prerequisites: []string{"A"}}},
			want:    ErrCycle,
		},
		{
			name:    "self loop",
			catalog: []Technology{{Name: "A", Cost: 1, Prerequisites: []string{"A"}}},
			want:    ErrCycle,
		},
		{
			name:    "unknown prerequisite",
			catalog: []Technology{{Name: "A", Cost: 1, Prerequisites: []string{"Z"}}},
			want:    ErrUnknownPrerequisite,
		},
		{
			name:    "duplicate",
			catalog: []Technology{{Name: "A", Cost: 1}, {Name: "A", Cost: 2}},
			want:    ErrDuplicate,
		},
		{
			name:    "zero cost",
			catalog: []Technology{{Name: "A", Cost: 0}},
			want:    ErrInvalidCost,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateCatalog(tt.catalog)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
