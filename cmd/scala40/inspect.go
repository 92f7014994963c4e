package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vctt94/scala40/pkg/codec"
	"github.com/vctt94/scala40/pkg/integrity"
)

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	file := fs.String("file", "", "exported state document to load")
	validate := fs.Bool("validate", false, "run the integrity checker and print any violations")
	show := fs.String("show", "table", "what to print: hand|table|stock")
	if err := fs.Parse(args); err != nil {
		return &exitError{code: 2, msg: err.Error()}
	}
	if *file == "" {
		return &exitError{code: 2, msg: "inspect requires --file"}
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		return &exitError{code: 2, msg: err.Error()}
	}

	g, err := codec.Unmarshal(raw)
	if err != nil {
		if _, ok := err.(*codec.ErrCorruptState); ok {
			fmt.Fprintln(os.Stderr, err)
			return &exitError{code: 3, msg: "corrupt state"}
		}
		return &exitError{code: 2, msg: err.Error()}
	}

	if *validate {
		violations := integrity.Check(g.IntegritySnapshot())
		if len(violations) == 0 {
			fmt.Println("integrity: OK")
		} else {
			for _, v := range violations {
				fmt.Printf("integrity: [%s] %s\n", v.Code, v.Message)
			}
			return &exitError{code: 3, msg: "corrupt state"}
		}
	}

	switch *show {
	case "hand":
		for _, p := range g.Players {
			fmt.Printf("%s (%d cards, opened=%v, score=%d):\n", p.ID, len(p.Hand), p.HasOpened, p.Score)
			for _, c := range p.Hand {
				fmt.Printf("  %s\n", c.String())
			}
		}
	case "table":
		for i, m := range g.Melds {
			fmt.Printf("meld %d [%s, owner %s]:\n", i, m.Kind, m.Owner)
			for _, c := range m.Cards {
				fmt.Printf("  %s\n", c.String())
			}
		}
	case "stock":
		fmt.Printf("stock: %d cards, discard: %d cards\n", len(g.Stock), len(g.Discard))
	default:
		return &exitError{code: 2, msg: fmt.Sprintf("unknown --show value %q", *show)}
	}
	return nil
}
