package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/neilgarb/durak"
)

type command struct {
	name  string
	cards []durak.Card
	arg   string
}

var aliases = map[string]string{
	"a": "attack", "attack": "attack",
	"d": "defend", "defend": "defend",
	"e": "end", "end": "end",
	"t": "take", "take": "take",
	"f": "flip", "flip": "flip",
	"s": "save", "save": "save",
	"l": "load", "load": "load",
	"h": "help", "help": "help", "?": "help",
	"q": "quit", "quit": "quit", "exit": "quit",
}

// cardArgs is how many card arguments each command takes.
var cardArgs = map[string]int{
	"attack": 1,
	"defend": 2,
}

func parseCommand(line string) (command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{}, errors.New("empty command")
	}

	name, ok := aliases[strings.ToLower(fields[0])]
	if !ok {
		return command{}, fmt.Errorf("unknown command %q, try help", fields[0])
	}
	args := fields[1:]

	if n, ok := cardArgs[name]; ok {
		if len(args) != n {
			return command{}, fmt.Errorf("%s takes %d card(s)", name, n)
		}
		cmd := command{name: name}
		for _, a := range args {
			c, err := durak.ParseCard(a)
			if err != nil {
				return command{}, err
			}
			cmd.cards = append(cmd.cards, c)
		}
		return cmd, nil
	}

	switch name {
	case "save", "load":
		if len(args) > 1 {
			return command{}, fmt.Errorf("%s takes at most one file name", name)
		}
		cmd := command{name: name}
		if len(args) == 1 {
			cmd.arg = args[0]
		}
		return cmd, nil
	}

	if len(args) != 0 {
		return command{}, fmt.Errorf("%s takes no arguments", name)
	}
	return command{name: name}, nil
}

// intent converts a game command into an intent from actor. It returns false
// for commands that don't touch the game rules.
func (c command) intent(actor durak.PlayerID) (durak.Intent, bool) {
	switch c.name {
	case "attack":
		return durak.Intent{Type: durak.IntentAttack, Player: actor, Card: c.cards[0]}, true
	case "defend":
		return durak.Intent{Type: durak.IntentDefend, Player: actor, Attack: c.cards[0], Card: c.cards[1]}, true
	case "end":
		return durak.Intent{Type: durak.IntentEndRound, Player: actor}, true
	case "take":
		return durak.Intent{Type: durak.IntentTakeCards, Player: actor}, true
	}
	return durak.Intent{}, false
}

const helpText = `commands:
  attack <card>          a 9S     put a card on the table
  defend <attack> <card> d 9S KS  cover an attacking card
  end                    e        end the round (attacker, all covered)
  take                   t        pick up the table (defender)
  flip                   f        pass the screen to the other player
  save [file]            s        write the game to a save file
  load [file]            l        read a game from a save file
  quit                   q`
