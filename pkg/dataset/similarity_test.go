package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchConfidence(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{
			name: "exact match",
			a:    "customer_id",
			b:    "customer_id",
			want: 1.0,
		},
		{
			name: "exact match after normalization",
			a:    "  Customer_ID ",
			b:    "customer_id",
			want: 1.0,
		},
		{
			name: "id convention pair",
			a:    "branch_id",
			b:    "id",
			want: 0.9,
		},
		{
			name: "code convention pair",
			a:    "product_code",
			b:    "code",
			want: 0.9,
		},
		{
			name: "name convention pair",
			a:    "customer_name",
			b:    "name",
			want: 0.9,
		},
		{
			name: "two suffixed id columns",
			a:    "branch_id",
			b:    "customer_id",
			want: 0.9,
		},
		{
			name: "unrelated names",
			a:    "email",
			b:    "revenue",
			want: 0,
		},
		{
			name: "empty name",
			a:    "",
			b:    "id",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MatchConfidence(tt.a, tt.b), 1e-9)
		})
	}
}

func TestMatchConfidence_Fuzzy(t *testing.T) {
	// "customers" vs "customer": distance 1, maxLen 9, similarity 8/9,
	// discounted by 0.8.
	got := MatchConfidence("customers", "customer")
	assert.InDelta(t, 8.0/9.0*0.8, got, 1e-9)

	// Similarity at or below 0.8 yields no confidence.
	assert.Zero(t, MatchConfidence("abcde", "abxyz"))
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical", a: "amount", b: "amount", want: 1.0},
		{name: "both empty", a: "", b: "", want: 1.0},
		{name: "one empty", a: "abc", b: "", want: 0},
		{name: "one edit", a: "total", b: "totals", want: 5.0 / 6.0},
		{name: "disjoint", a: "ab", b: "xy", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshtein(tt.a, tt.b), "levenshtein(%q, %q)", tt.a, tt.b)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "branch_id", Normalize("  Branch_ID "))
	assert.Equal(t, "", Normalize("   "))
}
