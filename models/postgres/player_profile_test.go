package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerProfileWinRate(t *testing.T) {
	p := PlayerProfile{}
	assert.Equal(t, 0.0, p.WinRate(), "no matches yet")

	p.MatchesPlayed = 3
	p.MatchesWon = 1
	assert.Equal(t, 33.3, p.WinRate())

	p.MatchesPlayed = 4
	p.MatchesWon = 4
	assert.Equal(t, 100.0, p.WinRate())

	p.MatchesPlayed = 6
	p.MatchesWon = 4
	assert.Equal(t, 66.7, p.WinRate())
}
