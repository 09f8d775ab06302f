package fiscal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverCanonical(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"already canonical", "TRIVANDRUM", "TRIVANDRUM"},
		{"alias tvm", "TVM SOUTH", "TRIVANDRUM"},
		{"alias ernakulam", "ERNAKULAM CITY", "ERNAMKULAM"},
		{"alias kasargode", "KASARGODE", "KASARGOD"},
		{"alias edappal", "EDAPPAL", "EDAPAL"},
		{"alias neyyattinkara", "NEYYATTINKARA", "NEYYATINKARA"},
		{"substring match", "Debtors - KOLLAM", "KOLLAM"},
		{"lowercase input", "thrissur", "THRISSUR"},
		{"unmatched passes through", "MSD OUTSIDE KERALA", "MSD OUTSIDE KERALA"},
		{"empty passes through", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Canonical(tt.label))
		})
	}
}

// TestResolverIdempotent checks that canonicalizing a canonical name is a
// no-op for every territory in the list.
func TestResolverIdempotent(t *testing.T) {
	r := NewResolver()
	for _, territory := range r.Territories() {
		assert.Equal(t, territory, r.Canonical(territory))
	}
}

func TestResolverTerritoryCount(t *testing.T) {
	r := NewResolver()
	require.Len(t, r.Territories(), 19)
}

func TestResolverOverrides(t *testing.T) {
	r := NewResolverWith([]string{"NORTH", "SOUTH"}, map[string]string{"N": "NORTH"})
	got, ok := r.Match("ZONE N")
	assert.True(t, ok)
	assert.Equal(t, "NORTH", got)

	// Built-in territories no longer apply once overridden.
	_, ok = r.Match("TRIVANDRUM")
	assert.False(t, ok)
}

func TestMatchMissing(t *testing.T) {
	r := NewResolver()
	missing := map[string]struct{}{"NEYYATINKARA": {}}

	got, ok := r.MatchMissing("Debtors - NEYYATTINKARA", missing)
	assert.True(t, ok)
	assert.Equal(t, "NEYYATINKARA", got)

	// Territories outside the missing set are not considered.
	_, ok = r.MatchMissing("KOLLAM", missing)
	assert.False(t, ok)
}
