package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, map[string]bool{"ok": true}, NewService(false).Status())
}

func TestRoot(t *testing.T) {
	root := NewService(true).Root()
	assert.Equal(t, "ok", root["status"])
	assert.Equal(t, "ResumeGenius AI", root["service"])
	assert.Equal(t, true, root["llm_available"])
}
