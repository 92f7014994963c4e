// Command scala40 is the reference CLI front-end for the engine (spec.md
// §6): a flag-based subcommand dispatcher, grounded on
// cmd/pokerctl/main.go's top-level flag.Parse()-then-switch-on-args[0]
// shape from the teacher.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "play":
		err = runPlay(os.Args[2:])
	case "simulate":
		err = runSimulate(os.Args[2:])
	case "inspect":
		err = runInspect(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "scala40:", err)
		if ec, ok := err.(exitCoder); ok {
			os.Exit(ec.ExitCode())
		}
		os.Exit(1)
	}
}

// exitCoder lets a subcommand request a specific process exit code
// (spec.md §6: "Exit codes: 0 normal; 2 validation failure; 3 corrupt
// state").
type exitCoder interface {
	ExitCode() int
}

type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }
func (e *exitError) ExitCode() int { return e.code }

func usage() {
	fmt.Fprintln(os.Stderr, `usage: scala40 <command> [flags]

commands:
  play     --players N --seed S       interactive hot-seat game
  simulate --games G --players N --seed S   deterministic AI driver
  inspect  --file F [--validate] [--show hand|table|stock]`)
}
