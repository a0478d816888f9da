package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/neilgarb/durak"
)

var (
	seed     = flag.Int64("seed", 0, "deck seed (default: current time)")
	loadFile = flag.String("load", "", "save file to resume")
	saveFile = flag.String("save", "durak_save.txt", "default save file")
)

func main() {
	flag.Parse()

	var g *durak.Game
	if *loadFile != "" {
		var err error
		if g, err = loadGame(*loadFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	} else {
		s := *seed
		if s == 0 {
			s = time.Now().UnixNano()
		}
		g = durak.NewGame(s)
	}

	run(g, os.Stdin, os.Stdout)
}

// run plays g in hot-seat mode until the input ends or a player quits.
func run(g *durak.Game, in io.Reader, out io.Writer) {
	fmt.Fprintln(out, renderGame(g.Snapshot()))

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			return
		}

		cmd, err := parseCommand(sc.Text())
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		switch cmd.name {
		case "quit":
			return
		case "help":
			fmt.Fprintln(out, helpText)
			continue
		case "flip":
			g.FlipView()
		case "save":
			name := fileOr(cmd.arg)
			if err := saveGame(g, name); err != nil {
				fmt.Fprintln(out, renderError(err))
				continue
			}
			fmt.Fprintf(out, "saved to %s\n", name)
			continue
		case "load":
			loaded, err := loadGame(fileOr(cmd.arg))
			if err != nil {
				fmt.Fprintln(out, renderError(err))
				continue
			}
			g = loaded
		default:
			intent, ok := cmd.intent(actor(g))
			if !ok {
				fmt.Fprintln(out, renderError(fmt.Errorf("%s is not a move", cmd.name)))
				continue
			}
			if err := g.Apply(intent); err != nil {
				fmt.Fprintln(out, renderError(err))
				continue
			}
			passScreen(g)
		}

		fmt.Fprintln(out, renderGame(g.Snapshot()))
		if g.Phase() == durak.PhaseGameOver {
			return
		}
	}
}

func actor(g *durak.Game) durak.PlayerID {
	if g.Player1Visible() {
		return durak.PlayerOne
	}
	return durak.PlayerTwo
}

// passScreen turns the view to whoever has to act next.
func passScreen(g *durak.Game) {
	next := g.Attacker()
	if g.CanTakeCards() {
		next = g.Defender()
	}
	if actor(g) != next {
		g.FlipView()
	}
}

func fileOr(name string) string {
	if name == "" {
		return *saveFile
	}
	return name
}

func saveGame(g *durak.Game, name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := durak.Save(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func loadGame(name string) (*durak.Game, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return durak.Load(f)
}
