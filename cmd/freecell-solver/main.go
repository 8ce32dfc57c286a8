// Command freecell-solver solves FreeCell solitaire deals for the
// companion web app [https://constf1.github.io/angular/freecell-demo].
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/constf1/freecell-solver/internal/freecell"
)

// Documented defaults of the search budgets.
const (
	defaultPathMax = 256
	defaultGrabMax = 1000
	defaultDoneMax = 10000000
)

type options struct {
	pathMax int
	grabMax int
	doneMax int
	debug   bool
	any     bool
}

func main() {
	var opts options

	cmd := &cobra.Command{
		Use:   "freecell-solver DEAL",
		Short: "Solves FreeCell solitaire deals",
		Long: "Solves FreeCell solitaire deals for " +
			"[https://constf1.github.io/angular/freecell-demo].\n" +
			"DEAL is the deal number to use.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			deal, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("DEAL should be a non-negative integer value, but got '%s'", args[0])
			}
			run(deal, opts)
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.pathMax, "path", "P", defaultPathMax,
		"the upper bound of the search range (inclusive)")
	cmd.Flags().IntVarP(&opts.grabMax, "scoop", "S", defaultGrabMax,
		"the maximum number of variants to be processed in one iteration")
	cmd.Flags().IntVarP(&opts.doneMax, "limit", "L", defaultDoneMax,
		"the maximum number of variants to be processed in total")
	cmd.Flags().BoolVarP(&opts.debug, "debug", "D", false, "use debug output")
	cmd.Flags().BoolVarP(&opts.any, "any", "A", false, "stop on the first result")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
}

func run(deal uint64, opts options) {
	log := logrus.New()
	if opts.debug {
		log.SetLevel(logrus.DebugLevel)
	}

	// The path bound is inclusive; the solver prunes at >= limit.
	pathLimit := 1 + opts.pathMax
	grabMax := max(opts.grabMax, 1)    // at least one path per iteration
	doneMax := max(opts.doneMax, 1000) // at least one thousand states

	sol := freecell.NewSolver(freecell.DefaultSolverConfig(), log)
	sol.Deal(deal)

	for {
		stop := true

		switch result := sol.Step(pathLimit, grabMax); result {
		case freecell.StepSolved:
			if path, ok := sol.Solution(); ok {
				fmt.Printf("Path (%d):\n", len(path))
				fmt.Printf("%s\n\n", freecell.DemoLink(deal, path))
			}
			if !opts.any {
				stop = overLimit(sol, doneMax, opts.debug)
			}
		case freecell.StepContinue:
			stop = overLimit(sol, doneMax, opts.debug)
		case freecell.StepExhausted:
			stop = true
		}

		if stop {
			break
		}
	}

	path, found := sol.Solution()
	if opts.debug {
		game := sol.Game()
		game.Rewind()
		fmt.Printf("Deal #%d\n", deal)
		fmt.Printf("%s\n\n", game)

		if found {
			fmt.Println("Solution:")
			printPath(game, path)
			return
		}
	}
	if !found {
		fmt.Println("Solution not found!")
	}
}

func overLimit(sol *freecell.Solver, doneMax int, debug bool) bool {
	if sol.DoneLen() <= doneMax {
		return false
	}
	if debug {
		fmt.Printf("Done: %d, %d still in process, but we're over the limit!\n\n",
			sol.DoneLen(), sol.BankLen())
	}
	return true
}

// printPath replays the solution, naming every move.
func printPath(game *freecell.Game, path freecell.Path) {
	game.Rewind()
	for i, mv := range path {
		card, ok := game.CardAt(mv.Giver())
		if !ok {
			panic("freecell: giver should exist")
		}
		fmt.Printf("%d. %s: %s -> %s\n", i+1, card,
			freecell.SpotName(mv.Giver()), freecell.SpotName(mv.Taker()))
		game.MoveCard(mv.Giver(), mv.Taker())
	}
}
