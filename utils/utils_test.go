package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.05, Round2(1.054))
	assert.Equal(t, 1.06, Round2(1.056))
	assert.Equal(t, 1500.0, Round2(1500))
}

func TestRandomPassword(t *testing.T) {
	a := RandomPassword(6)
	b := RandomPassword(6)
	assert.Len(t, a, 12)
	assert.Regexp(t, "^[0-9a-f]+$", a)
	assert.NotEqual(t, a, b)
}

func TestNormalizeDTO(t *testing.T) {
	dto := struct {
		Name  string
		Price float64
		Count int
	}{Name: "  riz  ", Price: 10.006, Count: 3}

	NormalizeDTO(&dto)
	assert.Equal(t, "riz", dto.Name)
	assert.Equal(t, 10.01, dto.Price)
	assert.Equal(t, 3, dto.Count)
}
