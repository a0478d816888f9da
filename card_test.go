package durak

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankOrder(t *testing.T) {
	ranks := AllRanks()
	require.Len(t, ranks, 13)
	assert.Equal(t, 2, ranks[0].Value())
	assert.Equal(t, 14, ranks[len(ranks)-1].Value())
	for i := 1; i < len(ranks); i++ {
		assert.Greater(t, ranks[i].Value(), ranks[i-1].Value())
	}
}

func TestOutranks(t *testing.T) {
	testCases := []struct {
		a, b string
		want bool
	}{
		{"KS", "9S", true},
		{"9S", "KS", false},
		{"9S", "9S", false},
		{"AS", "KS", true},
		{"3H", "2H", true},
		{"AS", "2H", false},
		{"2H", "AS", false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.a+">"+testCase.b, func(t *testing.T) {
			assert.Equal(t, testCase.want, mustCard(testCase.a).Outranks(mustCard(testCase.b)))
		})
	}
}

// TestBeats checks every pair of cards against every trump suit.
func TestBeats(t *testing.T) {
	var all []Card
	for _, s := range AllSuits() {
		for _, r := range AllRanks() {
			all = append(all, NewCard(s, r))
		}
	}

	for _, trumps := range AllSuits() {
		for _, attack := range all {
			for _, defense := range all {
				var want bool
				if attack.Suit() == trumps {
					want = defense.Suit() == trumps && defense.Rank() > attack.Rank()
				} else {
					want = defense.Suit() == trumps ||
						defense.Suit() == attack.Suit() && defense.Rank() > attack.Rank()
				}
				assert.Equal(t, want, defense.Beats(attack, trumps),
					"%s on %s with %s trumps", defense, attack, trumps)
			}
		}
	}
}

func TestParseCard(t *testing.T) {
	testCases := []struct {
		in   string
		card Card
		err  bool
	}{
		{in: "9S", card: NewCard(SuitSpades, RankNine)},
		{in: "10h", card: NewCard(SuitHearts, RankTen)},
		{in: " QD ", card: NewCard(SuitDiamonds, RankQueen)},
		{in: "AC", card: NewCard(SuitClubs, RankAce)},
		{in: "2d", card: NewCard(SuitDiamonds, RankTwo)},
		{in: "", err: true},
		{in: "S", err: true},
		{in: "1S", err: true},
		{in: "11S", err: true},
		{in: "15S", err: true},
		{in: "9X", err: true},
		{in: "+9S", err: true},
		{in: "09S", err: true},
		{in: "None", err: true},
		{in: "(9, 'spades')", err: true},
		{in: "__import__('os')", err: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.in, func(t *testing.T) {
			c, err := ParseCard(testCase.in)
			if testCase.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.card, c)
		})
	}
}

func TestCardStringRoundTrip(t *testing.T) {
	for _, s := range AllSuits() {
		for _, r := range AllRanks() {
			c := NewCard(s, r)
			parsed, err := ParseCard(c.String())
			require.NoError(t, err)
			assert.Equal(t, c, parsed)
		}
	}
	assert.Equal(t, "None", Card{}.String())
}

func TestCardJSON(t *testing.T) {
	b, err := json.Marshal([]Card{mustCard("10H"), {}})
	require.NoError(t, err)
	assert.JSONEq(t, `["10H", null]`, string(b))

	var out []Card
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, []Card{mustCard("10H"), {}}, out)

	var c Card
	assert.Error(t, json.Unmarshal([]byte(`"ZZ"`), &c))
}

func TestErrorTag(t *testing.T) {
	g := scenarioGame(t)
	assert.Equal(t, "illegal_intent", ErrorTag(g.EndRound(PlayerOne)))
	assert.Equal(t, "not_in_hand", ErrorTag(g.Attack(PlayerOne, mustCard("AS"))))
	_, err := LoadString("deck = None")
	assert.Equal(t, "corrupt_save", ErrorTag(err))
	assert.Equal(t, "error", ErrorTag(assert.AnError))
}
