package fiscal

import (
	"strings"
)

// keralaTerritories is the fixed list of 19 canonical territory names
// privileged for reporting. Order matters: the first match wins during
// canonicalization.
var keralaTerritories = []string{
	"TRIVANDRUM", "NEYYATINKARA", "KOLLAM", "PATHANAMTHITTA", "KOTTAYAM",
	"ALAPPUZHA", "IDUKKI", "MOOVATTUPUZHA", "ERNAMKULAM", "PALAKKAD",
	"THRISSUR", "EDAPAL", "MALAPPURAM", "KOZHIKODE CITY", "VADAKARA",
	"WAYANAD", "THALASSERY", "KANNUR", "KASARGOD",
}

// territoryAliases maps alternate spellings observed in the source
// workbooks to their canonical territory. A label matches when it
// contains the alias as a substring.
var territoryAliases = map[string]string{
	"TVM":           "TRIVANDRUM",
	"NEYYATTINKARA": "NEYYATINKARA",
	"ERNAKULAM":     "ERNAMKULAM",
	"KASARGODE":     "KASARGOD",
	"EDAPPAL":       "EDAPAL",
}

// Resolver canonicalizes raw area labels against a territory list and
// alias table. The zero value is unusable; build one with NewResolver.
type Resolver struct {
	territories []string
	aliases     map[string]string
}

// NewResolver returns a resolver over the built-in Kerala territory list
// and aliases.
func NewResolver() *Resolver {
	return NewResolverWith(nil, nil)
}

// NewResolverWith returns a resolver with overridden territories or
// aliases. Nil arguments keep the built-in tables.
func NewResolverWith(territories []string, aliases map[string]string) *Resolver {
	r := &Resolver{}
	if territories == nil {
		territories = keralaTerritories
	}
	r.territories = make([]string, len(territories))
	for i, t := range territories {
		r.territories[i] = strings.ToUpper(strings.TrimSpace(t))
	}
	if aliases == nil {
		aliases = territoryAliases
	}
	r.aliases = make(map[string]string, len(aliases))
	for alias, canon := range aliases {
		r.aliases[strings.ToUpper(strings.TrimSpace(alias))] = strings.ToUpper(strings.TrimSpace(canon))
	}
	return r
}

// Territories returns the canonical territory names in priority order.
func (r *Resolver) Territories() []string {
	out := make([]string, len(r.territories))
	copy(out, r.territories)
	return out
}

// Canonical resolves a raw label to its canonical territory name. A
// label matches a territory when it equals it, contains it, or contains
// one of its aliases. Unmatched labels pass through unchanged; the
// operation is idempotent for already-canonical names.
func (r *Resolver) Canonical(label string) string {
	name, _ := r.Match(label)
	return name
}

// Match is Canonical plus a flag reporting whether a territory matched.
func (r *Resolver) Match(label string) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(label))
	if upper == "" {
		return label, false
	}
	for _, territory := range r.territories {
		if strings.Contains(upper, territory) {
			return territory, true
		}
		for alias, canon := range r.aliases {
			if canon == territory && strings.Contains(upper, alias) {
				return territory, true
			}
		}
	}
	return label, false
}

// MatchMissing behaves like Match but only considers the given subset of
// territories. The yearly-sheet second pass uses it to recover
// territories reported outside the Route Sales block.
func (r *Resolver) MatchMissing(label string, missing map[string]struct{}) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(label))
	if upper == "" {
		return "", false
	}
	for _, territory := range r.territories {
		if _, want := missing[territory]; !want {
			continue
		}
		if strings.Contains(upper, territory) {
			return territory, true
		}
		for alias, canon := range r.aliases {
			if canon == territory && strings.Contains(upper, alias) {
				return territory, true
			}
		}
	}
	return "", false
}
