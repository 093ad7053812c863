package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentHashIsStableAndSensitiveToContent(t *testing.T) {
	a := ContentHash("exports.add = 1;")
	b := ContentHash("exports.add = 1;")
	c := ContentHash("exports.add = 2;")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16) // 8 bytes, hex-encoded
}
