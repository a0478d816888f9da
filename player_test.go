package durak

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerHand(t *testing.T) {
	p := NewPlayer(PlayerTwo)
	assert.Equal(t, PlayerTwo, p.ID())
	assert.True(t, p.IsEmptyHanded())

	p.DealInto(cards("9S", "KD", "2C")...)
	assert.Equal(t, 3, p.HandSize())

	c, err := p.RemoveFromHand(mustCard("KD"))
	require.NoError(t, err)
	assert.Equal(t, mustCard("KD"), c)
	assert.Equal(t, cards("9S", "2C"), p.Hand())

	// A repeated removal is a stale intent.
	_, err = p.RemoveFromHand(mustCard("KD"))
	assert.ErrorIs(t, err, ErrNotInHand)
	assert.Equal(t, 2, p.HandSize())

	hand := p.Hand()
	hand[0] = mustCard("AH")
	assert.True(t, p.Has(mustCard("9S")), "Hand must return a copy")
}

func TestPlayerID(t *testing.T) {
	assert.Equal(t, PlayerTwo, PlayerOne.Other())
	assert.Equal(t, PlayerOne, PlayerTwo.Other())
	assert.Equal(t, PlayerNone, PlayerID(5).Other())
	assert.Equal(t, "Player 1", PlayerOne.String())
	assert.False(t, PlayerNone.Valid())
}
