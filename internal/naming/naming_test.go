package naming

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSluggify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"15/9-F-1", "15!9-F-1"},
		{"A B", "A_B"},
		{"15/9-F-1 C", "15!9-F-1_C"},
		{"a / b", "a_!_b"},
		{"", ""},
		{"NO-CHANGE", "NO-CHANGE"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sluggify(tt.input))
		})
	}
}

func TestSluggifyOrderIndependent(t *testing.T) {
	inputs := []string{"15/9-F-1 C", "a b/c d", "//  //"}
	for _, in := range inputs {
		slashFirst := strings.ReplaceAll(strings.ReplaceAll(in, "/", "!"), " ", "_")
		spaceFirst := strings.ReplaceAll(strings.ReplaceAll(in, " ", "_"), "/", "!")
		assert.Equal(t, slashFirst, spaceFirst, in)
		assert.Equal(t, slashFirst, Sluggify(in), "substitution order changed the result for %q", in)
	}
}

func TestFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/data/logs/well.las", "well.las"},
		{"logs/my well.las", "my_well.las"},
		{"well.las", "well.las"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FromPath(tt.path), tt.path)
	}
}
