package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSessionID_Format(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^session_1709294400000_[a-z0-9]{9}$`)

	id := NewSessionID(now)
	assert.Regexp(t, pattern, id)
}

func TestNewSessionID_Unique(t *testing.T) {
	now := time.Now()
	seen := make(map[string]struct{}, 1000)

	for i := 0; i < 1000; i++ {
		id := NewSessionID(now)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate session id %s", id)
		seen[id] = struct{}{}
	}
}
