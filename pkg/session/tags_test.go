package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"a, b ,c", []string{"a", "b", "c"}},
		{"p, q", []string{"p", "q"}},
		{"", []string{""}},
		{"a,", []string{"a", ""}},
		{"a,,b", []string{"a", "", "b"}},
		{"  solo  ", []string{"solo"}},
		{"a, a", []string{"a", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTags(tt.text))
		})
	}
}

func TestJoinTags(t *testing.T) {
	assert.Equal(t, "a, b", JoinTags([]string{"a", "b"}))
	assert.Equal(t, "", JoinTags(nil))
	assert.Equal(t, []string{"sf", "classic"}, SplitTags(JoinTags([]string{"sf", "classic"})))
}
