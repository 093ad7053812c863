package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLastReturnsPointerToFinalElement(t *testing.T) {
	s := []int{1, 2, 3}
	last := Last(s)
	assert.Equal(t, 3, *last)

	*last = 99
	assert.Equal(t, []int{1, 2, 99}, s)
}

func TestPopShrinksSliceByOne(t *testing.T) {
	s := []int{1, 2, 3}
	Pop(&s)
	assert.Equal(t, []int{1, 2}, s)
}
