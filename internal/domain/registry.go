package domain

import (
	"fmt"
	"sort"

	"github.com/mouse-blink/lintel/internal/domain/rules"
	m "github.com/mouse-blink/lintel/internal/model"
)

// Registry is the immutable catalog of known rules. It is built once per
// process and shared read-only between workers.
type Registry struct {
	entries []rules.Entry
	index   map[string]int
	aliases map[string]string
}

// NewRegistry builds a registry from entries, keeping their order. Aliases
// map straight to canonical identifiers, so resolution never chains.
func NewRegistry(entries ...rules.Entry) (*Registry, error) {
	r := &Registry{
		entries: make([]rules.Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
		aliases: map[string]string{},
	}

	for _, entry := range entries {
		id := entry.Description.ID
		if id == "" || id == m.AllRules {
			return nil, fmt.Errorf("invalid rule identifier %q", id)
		}

		if _, dup := r.index[id]; dup {
			return nil, fmt.Errorf("duplicate rule identifier %q", id)
		}

		r.index[id] = len(r.entries)
		r.entries = append(r.entries, entry)
	}

	for _, entry := range r.entries {
		for _, alias := range entry.Description.Aliases {
			if _, clash := r.index[alias]; clash {
				return nil, fmt.Errorf("alias %q shadows a rule identifier", alias)
			}

			if _, dup := r.aliases[alias]; dup {
				return nil, fmt.Errorf("duplicate alias %q", alias)
			}

			r.aliases[alias] = entry.Description.ID
		}
	}

	return r, nil
}

// DefaultRegistry returns the registry of built-in rules plus the
// superfluous-disable meta rule.
func DefaultRegistry() *Registry {
	entries := append(rules.Builtin(), superfluousDisableCommandEntry)

	r, err := NewRegistry(entries...)
	if err != nil {
		panic(fmt.Sprintf("built-in registry is invalid: %v", err))
	}

	return r
}

// Resolve maps an identifier or deprecated alias to its canonical
// identifier.
func (r *Registry) Resolve(id string) (string, bool) {
	if _, ok := r.index[id]; ok {
		return id, true
	}

	canonical, ok := r.aliases[id]

	return canonical, ok
}

// Lookup returns the entry for a canonical identifier or alias.
func (r *Registry) Lookup(id string) (rules.Entry, bool) {
	canonical, ok := r.Resolve(id)
	if !ok {
		return rules.Entry{}, false
	}

	return r.entries[r.index[canonical]], true
}

// IsOptIn reports whether id names an opt-in rule.
func (r *Registry) IsOptIn(id string) bool {
	entry, ok := r.Lookup(id)

	return ok && entry.Description.OptIn
}

// IsCollecting reports whether id names a rule with a collect phase.
func (r *Registry) IsCollecting(id string) bool {
	entry, ok := r.Lookup(id)

	return ok && entry.Description.Collecting
}

// All returns every entry in registration order.
func (r *Registry) All() []rules.Entry {
	return append([]rules.Entry(nil), r.entries...)
}

// IDs returns every canonical identifier in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		ids = append(ids, e.Description.ID)
	}

	return ids
}

// DefaultEnabled returns the identifiers of rules that are not opt-in.
func (r *Registry) DefaultEnabled() []string {
	var ids []string

	for _, e := range r.entries {
		if !e.Description.OptIn {
			ids = append(ids, e.Description.ID)
		}
	}

	return ids
}

// OptIn returns the identifiers of opt-in rules.
func (r *Registry) OptIn() []string {
	var ids []string

	for _, e := range r.entries {
		if e.Description.OptIn {
			ids = append(ids, e.Description.ID)
		}
	}

	return ids
}

// order returns the registration position of id, used to keep rule
// execution deterministic.
func (r *Registry) order(id string) int {
	if i, ok := r.index[id]; ok {
		return i
	}

	return len(r.entries)
}

// sortByRegistration orders ids by registration position.
func (r *Registry) sortByRegistration(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool { return r.order(ids[i]) < r.order(ids[j]) })
}
