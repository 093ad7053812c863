package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractConfigFlagSpaceForm(t *testing.T) {
	path, rest := extractConfigFlag([]string{"--config", "/etc/clou.yaml", "run", "main.clou"})
	assert.Equal(t, "/etc/clou.yaml", path)
	assert.Equal(t, []string{"run", "main.clou"}, rest)
}

func TestExtractConfigFlagEqualsForm(t *testing.T) {
	path, rest := extractConfigFlag([]string{"run", "--config=/etc/clou.yaml", "main.clou"})
	assert.Equal(t, "/etc/clou.yaml", path)
	assert.Equal(t, []string{"run", "main.clou"}, rest)
}

func TestExtractConfigFlagAbsentLeavesArgsUntouched(t *testing.T) {
	path, rest := extractConfigFlag([]string{"run", "main.clou"})
	assert.Equal(t, "", path)
	assert.Equal(t, []string{"run", "main.clou"}, rest)
}
