package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_IsValidSource(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{"Filesystem", SourceFS, true},
		{"Bucket", SourceBucket, true},
		{"Invalid", "ftp", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{Source: tt.source}
			assert.Equal(t, tt.want, c.IsValidSource())
		})
	}
}

func TestConfig_CacheTTL(t *testing.T) {
	assert.Equal(t, 90*time.Second, Config{CacheTTLSeconds: 90}.CacheTTL())
	assert.Zero(t, Config{}.CacheTTL())
}
