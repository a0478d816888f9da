package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/neilgarb/durak"
)

var (
	clrBorder = lipgloss.Color("#30363d")
	clrSubtle = lipgloss.Color("#8b949e")
	clrGold   = lipgloss.Color("#e3b341")
	clrGreen  = lipgloss.Color("#3fb950")
	clrRed    = lipgloss.Color("#f85149")
	clrWhite  = lipgloss.Color("#e6edf3")

	suitColors = map[durak.Suit]lipgloss.Color{
		durak.SuitSpades:   lipgloss.Color("#e6edf3"),
		durak.SuitClubs:    lipgloss.Color("#44aaff"),
		durak.SuitDiamonds: lipgloss.Color("#ffd700"),
		durak.SuitHearts:   lipgloss.Color("#ff6b6b"),
	}
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func bold(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

func box(content string, borderClr lipgloss.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderClr).
		Padding(0, 1).
		Render(content)
}

func renderCard(c durak.Card, trumps durak.Suit) string {
	if c.IsZero() {
		return fg(clrSubtle).Render("--")
	}
	st := fg(suitColors[c.Suit()])
	if c.Suit() == trumps {
		st = st.Bold(true).Underline(true)
	}
	return st.Render(c.String())
}

func renderCards(cards []durak.Card, trumps durak.Suit) string {
	if len(cards) == 0 {
		return fg(clrSubtle).Render("(none)")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = renderCard(c, trumps)
	}
	return strings.Join(parts, " ")
}

// viewer is the player whose hand is shown face up.
func viewer(s durak.Snapshot) durak.PlayerID {
	if s.Player1Visible {
		return durak.PlayerOne
	}
	return durak.PlayerTwo
}

func role(s durak.Snapshot, id durak.PlayerID) string {
	if id == s.Attacker {
		return "attacking"
	}
	return "defending"
}

func renderGame(s durak.Snapshot) string {
	trumps := s.TrumpCard.Suit()
	me := viewer(s)
	them := me.Other()

	trump := "trump " + renderCard(s.TrumpCard, trumps)
	if s.TrumpTaken {
		trump += fg(clrSubtle).Render(" (taken)")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		bold(clrGold).Render("DURAK"), "   ",
		trump, "   ",
		fg(clrWhite).Render(fmt.Sprintf("deck %d", s.DeckRemaining)))

	var table []string
	for _, p := range s.Table {
		table = append(table, renderCard(p.Attack, trumps)+fg(clrSubtle).Render("/")+renderCard(p.Defense, trumps))
	}
	tableLine := fg(clrSubtle).Render("(empty)")
	if len(table) > 0 {
		tableLine = strings.Join(table, "  ")
	}

	opp := fmt.Sprintf("%s, %s: %d cards", them, role(s, them), len(s.Hands[them]))
	mine := fmt.Sprintf("%s, %s:", me, role(s, me))

	lines := []string{
		header,
		"",
		fg(clrSubtle).Render(opp),
		"",
		box(tableLine, clrBorder),
		"",
		bold(clrWhite).Render(mine) + " " + renderCards(s.Hands[me], trumps),
		renderStatus(s, me),
	}
	return strings.Join(lines, "\n")
}

func renderStatus(s durak.Snapshot, me durak.PlayerID) string {
	switch s.Result.Status {
	case durak.StatusWin:
		return bold(clrGreen).Render(s.Result.String())
	case durak.StatusTie:
		return bold(clrGold).Render("It's a tie")
	}

	var actions []string
	if me == s.Attacker {
		actions = append(actions, "attack")
		if s.CanEndRound {
			actions = append(actions, "end")
		}
	} else {
		if s.CanTakeCards {
			actions = append(actions, "defend", "take")
		}
	}
	if len(actions) == 0 {
		return fg(clrSubtle).Render("waiting, flip to pass the screen")
	}
	return fg(clrSubtle).Render("you can: " + strings.Join(actions, ", "))
}

func renderError(err error) string {
	return fg(clrRed).Render(durak.ErrorTag(err) + ": " + err.Error())
}
