package durak

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, g *Game) *Game {
	t.Helper()
	text := SaveString(g)
	loaded, err := LoadString(text)
	require.NoError(t, err, text)
	assert.True(t, loaded.Equal(g), "round trip changed the game:\n%s", text)
	assert.Equal(t, text, SaveString(loaded))
	return loaded
}

func TestSaveRoundTrip(t *testing.T) {
	t.Run("new game", func(t *testing.T) {
		roundTrip(t, NewGame(3))
	})

	t.Run("mid round", func(t *testing.T) {
		g := newTestGame(t,
			&Deck{cards: cards("2C", "2D"), trump: mustCard("2H")},
			cards("9S", "9C", "3C", "4C", "5C", "6C"),
			cards("8S", "KS", "3D", "4D", "5D", "6D"),
		)
		require.NoError(t, g.Attack(PlayerOne, mustCard("9S")))
		require.NoError(t, g.Defend(PlayerTwo, mustCard("9S"), mustCard("KS")))
		require.NoError(t, g.Attack(PlayerOne, mustCard("9C")))
		g.FlipView()

		loaded := roundTrip(t, g)
		assert.Equal(t, PhaseAwaitingDefense, loaded.Phase())
		assert.Equal(t, 2, loaded.Player(PlayerOne).CardsPlayed())
		assert.Equal(t, 1, loaded.Player(PlayerTwo).CardsPlayed())
		assert.False(t, loaded.Player1Visible())
		assert.True(t, loaded.CanTakeCards())

		// The loaded game plays on exactly like the saved one.
		require.NoError(t, loaded.TakeCards(PlayerTwo))
		require.NoError(t, g.TakeCards(PlayerTwo))
		assert.True(t, loaded.Equal(g))
	})

	t.Run("single open attack", func(t *testing.T) {
		g := scenarioGame(t)
		require.NoError(t, g.Attack(PlayerOne, mustCard("9S")))
		text := SaveString(g)
		assert.Contains(t, text, "attacker cards = 9S\n")
		assert.Contains(t, text, "defender cards = None\n")
		roundTrip(t, g)
	})

	t.Run("trump taken", func(t *testing.T) {
		g := newTestGame(t,
			&Deck{trump: mustCard("2H")},
			cards("9S", "3C"),
			cards("KS", "4C"),
		)
		require.NoError(t, g.Attack(PlayerOne, mustCard("9S")))
		require.NoError(t, g.Defend(PlayerTwo, mustCard("9S"), mustCard("KS")))
		require.NoError(t, g.EndRound(PlayerOne))
		require.True(t, g.Deck().TrumpTaken())

		text := SaveString(g)
		assert.Contains(t, text, "deck = None\n")
		assert.Contains(t, text, "trump card taken = true\n")
		roundTrip(t, g)
	})

	t.Run("won game", func(t *testing.T) {
		g := newTestGame(t,
			&Deck{trump: mustCard("2H"), trumpTaken: true},
			cards("9S"),
			cards("3C", "4C"),
		)
		require.NoError(t, g.Attack(PlayerOne, mustCard("9S")))
		require.NoError(t, g.TakeCards(PlayerTwo))
		require.Equal(t, Result{Status: StatusWin, Winner: PlayerOne}, g.Result())

		text := SaveString(g)
		assert.Contains(t, text, "player 1 hand = None\n")
		loaded := roundTrip(t, g)
		assert.Equal(t, PhaseGameOver, loaded.Phase())
		assert.Equal(t, g.Result(), loaded.Result())
	})

	t.Run("random games", func(t *testing.T) {
		for seed := int64(1); seed <= 10; seed++ {
			g := NewGame(seed)
			r := rand.New(rand.NewSource(seed))
			for step := 0; step < 300 && g.Phase() != PhaseGameOver; step++ {
				require.NoError(t, g.Apply(randomIntent(g, r)))
				roundTrip(t, g)
			}
		}
	})
}

const validSave = `# hand written
deck = 2C 2D
trump card = 2H
trump card taken = false
defender = 2
player1 visible = true
attacker cards = 9S 9C
defender cards = KS None
player 1 hand = 3C 4C
player 2 hand = 3D 4D
`

func TestLoad(t *testing.T) {
	g, err := LoadString(validSave)
	require.NoError(t, err)
	assert.Equal(t, PlayerOne, g.Attacker())
	assert.Equal(t, PlayerTwo, g.Defender())
	assert.Equal(t, cards("2C", "2D"), g.Deck().Supply())
	assert.Equal(t, []Pair{
		{Attack: mustCard("9S"), Defense: mustCard("KS")},
		{Attack: mustCard("9C")},
	}, g.Table().Pairs())
	assert.Equal(t, cards("3C", "4C"), g.Player(PlayerOne).Hand())
	assert.Equal(t, PhaseAwaitingDefense, g.Phase())

	// Keys may come in any order.
	lines := strings.Split(strings.TrimSpace(validSave), "\n")
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	reversed, err := LoadString(strings.Join(lines, "\n"))
	require.NoError(t, err)
	assert.True(t, reversed.Equal(g))

	// There is no cap on the number of attacks in a round.
	crowded := set("attacker cards", "9S 9C 9D 9H 10S 10C 10D")(validSave)
	crowded = set("defender cards", "None None None None None None None")(crowded)
	g, err = LoadString(crowded)
	require.NoError(t, err)
	assert.Equal(t, 7, g.Table().Len())
	assert.Equal(t, 7, g.Player(PlayerOne).CardsPlayed())
	assert.Equal(t, 0, g.Player(PlayerTwo).CardsPlayed())
	assert.Len(t, g.Discarded(), 52-14)
	roundTrip(t, g)
}

func TestLoadCorrupt(t *testing.T) {
	testCases := []struct {
		name string
		edit func(string) string
	}{
		{"empty", func(string) string { return "" }},
		{"missing key", drop("player 2 hand")},
		{"unknown key", func(s string) string { return s + "score = 3\n" }},
		{"duplicate key", func(s string) string { return s + "defender = 1\n" }},
		{"no separator", func(s string) string { return s + "defender 1\n" }},
		{"bad card", set("player 1 hand", "3C 4Z")},
		{"code in card", set("player 1 hand", "__import__('os').system('ls')")},
		{"tuple card", set("trump card", "(2, 'hearts')")},
		{"empty value", set("player 1 hand", "")},
		{"none inside list", set("player 1 hand", "3C None")},
		{"bad bool", set("trump card taken", "maybe")},
		{"bad defender", set("defender", "3")},
		{"bad visibility", set("player1 visible", "")},
		{"duplicate card", set("player 1 hand", "3C 3D")},
		{"trump in hand and pending", set("player 1 hand", "3C 2H")},
		{"trump taken with deck left", set("trump card taken", "true")},
		{"unpaired table", set("defender cards", "KS")},
		{"invalid defense on table", set("defender cards", "8S None")},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := LoadString(testCase.edit(validSave))
			assert.ErrorIs(t, err, ErrCorruptSave)
		})
	}
}

func drop(key string) func(string) string {
	return func(s string) string {
		var out []string
		for _, line := range strings.Split(s, "\n") {
			if !strings.HasPrefix(line, key+" =") {
				out = append(out, line)
			}
		}
		return strings.Join(out, "\n")
	}
}

func set(key, value string) func(string) string {
	return func(s string) string {
		return drop(key)(s) + key + " = " + value + "\n"
	}
}
