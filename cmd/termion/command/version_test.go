package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1.2.3", "v1.2.3", true},
		{"v0.4.0", "v0.4.0", true},
		{"1.2.3-rc.1", "v1.2.3-rc.1", true},
		{"development", "development", false},
		{"6fc8586", "6fc8586", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := normalizeVersion(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
