// Package province resolves free-text delivery provinces to the standard province names.
//
// Matching is exact after trimming and lower-casing. There is no fuzzy or partial matching:
// a spelling that is not in the alias table stays unresolved so it can be reported and fixed
// in the table, rather than being attributed to a guessed province.
package province

import (
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erp/salesnorm/internal/domain/marketplace"
	"github.com/erp/salesnorm/internal/infrastructure/normalize"
)

// AliasConflict records an alias claimed by more than one standard province
type AliasConflict struct {
	Alias    string `json:"alias"`
	Previous string `json:"previous"`
	Winner   string `json:"winner"`
}

// Resolver maps raw province text to a standard province name.
// A Resolver is immutable after construction and safe for concurrent use.
type Resolver struct {
	aliases   map[string]string
	conflicts []AliasConflict
}

// NewResolver flattens an alias table into a lookup index.
// Standard names are processed in sorted order and aliases in listed order; when two standard
// provinces claim the same alias the later registration wins and the overwrite is recorded.
// Each standard name is also registered as an alias of itself.
func NewResolver(aliasMap marketplace.ProvinceAliasMap) *Resolver {
	r := &Resolver{aliases: make(map[string]string)}

	standards := make([]string, 0, len(aliasMap))
	for standard := range aliasMap {
		standards = append(standards, standard)
	}
	sort.Strings(standards)

	for _, standard := range standards {
		r.register(standard, standard)
		for _, alias := range aliasMap[standard] {
			r.register(alias, standard)
		}
	}
	return r
}

func (r *Resolver) register(alias, standard string) {
	key := normalizeKey(alias)
	if key == "" {
		return
	}
	if previous, ok := r.aliases[key]; ok && previous != standard {
		r.conflicts = append(r.conflicts, AliasConflict{Alias: key, Previous: previous, Winner: standard})
	}
	r.aliases[key] = standard
}

// Resolve returns the standard province for raw, or false when no alias matches
func (r *Resolver) Resolve(raw string) (string, bool) {
	key := normalizeKey(raw)
	if key == "" {
		return "", false
	}
	standard, ok := r.aliases[key]
	return standard, ok
}

// Conflicts returns the aliases that were claimed by more than one standard province
func (r *Resolver) Conflicts() []AliasConflict {
	out := make([]AliasConflict, len(r.conflicts))
	copy(out, r.conflicts)
	return out
}

// Len returns the number of distinct aliases known to the resolver
func (r *Resolver) Len() int {
	return len(r.aliases)
}

// normalizeKey trims and lower-cases text for lookup.
// A fresh caser is used per call since cases.Caser is not safe for concurrent use.
func normalizeKey(s string) string {
	s = normalize.CleanText(s)
	if s == "" {
		return ""
	}
	return cases.Lower(language.Und).String(s)
}
