package research

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicate           = errors.New("duplicate technology")
	ErrUnknownPrerequisite = errors.New("unknown prerequisite")
	ErrCycle               = errors.New("prerequisite cycle")
	ErrInvalidCost         = errors.New("technology cost must be positive")
)

// DefaultCatalog returns the built-in technology tree in catalog order.
func DefaultCatalog() []Technology {
	return []Technology{
		{Name: "Pottery", Cost: 20},
		{Name: "Alphabet", Cost: 20},
		{Name: "Bronze Working", Cost: 20},
		{Name: "Ceremonial Burial", Cost: 20},
		{Name: "Masonry", Cost: 20},
		{Name: "Wheel", Cost: 30},
		{Name: "Horseback Riding", Cost: 40, Prerequisites: []string{"Wheel"}},
		{Name: "Writing", Cost: 40, Prerequisites: []string{"Alphabet"}},
		{Name: "Code of Laws", Cost: 40, Prerequisites: []string{"Alphabet"}},
		{Name: "Currency", Cost: 40, Prerequisites: []string{"Bronze Working"}},
		{Name: "Iron Working", Cost: 60, Prerequisites: []string{"Bronze Working", "Wheel"}},
		{Name: "Mathematics", Cost: 60, Prerequisites: []string{"Alphabet", "Masonry"}},
		{Name: "Monarchy", Cost: 60, Prerequisites: []string{"Ceremonial Burial", "Code of Laws"}},
		{Name: "Mysticism", Cost: 60, Prerequisites: []string{"Ceremonial Burial", "Writing"}},
		{Name: "Literacy", Cost: 80, Prerequisites: []string{"Writing", "Code of Laws"}},
		{Name: "Trade", Cost: 100, Prerequisites: []string{"Pottery", "Currency", "Writing"}},
		{Name: "Philosophy", Cost: 120, Prerequisites: []string{"Mysticism", "Literacy"}},
	}
}

// ValidateCatalog checks costs, name uniqueness, prerequisite references, and that
// the prerequisite graph is acyclic (Kahn's topological sort). Returns the
// technology names in a valid research order.
func ValidateCatalog(catalog []Technology) ([]string, error) {
	index := make(map[string]int, len(catalog))
	for i, t := range catalog {
		if t.Cost <= 0 {
			return nil, fmt.Errorf("%q: %w", t.Name, ErrInvalidCost)
		}
		if _, dup := index[t.Name]; dup {
			return nil, fmt.Errorf("%q: %w", t.Name, ErrDuplicate)
		}
		index[t.Name] = i
	}

	indegree := make([]int, len(catalog))
	dependents := make([][]int, len(catalog))
	for i, t := range catalog {
		for _, p := range t.Prerequisites {
			j, ok := index[p]
			if !ok {
				return nil, fmt.Errorf("%q requires %q: %w", t.Name, p, ErrUnknownPrerequisite)
			}
			indegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	// Seed the queue in catalog order so the result is deterministic.
	var queue []int
	for i := range catalog {
		if indegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]string, 0, len(catalog))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		order = append(order, catalog[i].Name)
		for _, d := range dependents[i] {
			indegree[d]--
			if indegree[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	if len(order) != len(catalog) {
		var stuck []string
		for i, n := range indegree {
			if n > 0 {
				stuck = append(stuck, catalog[i].Name)
			}
		}
		return nil, fmt.Errorf("%v: %w", stuck, ErrCycle)
	}
	return order, nil
}
