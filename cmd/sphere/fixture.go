package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/synergysphere/sphere/internal/fixture"
)

var (
	fixtureSeed    uint64
	fixtureName    string
	fixtureSuggest int
)

var fixtureCmd = &cobra.Command{
	Use:   "fixture",
	Short: "Print a generated demo board as JSON",
	Long: `Print a generated demo board as indented JSON on stdout.

With --suggest N, print N team name suggestions instead, one per line.
The same non-zero --seed always yields the same output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeFixture(cmd.OutOrStdout(), fixtureSeed, fixtureName, fixtureSuggest)
	},
}

func init() {
	fixtureCmd.Flags().Uint64Var(&fixtureSeed, "seed", 0, "Random seed (0 picks one)")
	fixtureCmd.Flags().StringVar(&fixtureName, "name", "", "Board name (default: a generated team name)")
	fixtureCmd.Flags().IntVar(&fixtureSuggest, "suggest", 0, "Print this many team name suggestions instead of a board")
}

func writeFixture(w io.Writer, seed uint64, name string, suggest int) error {
	gen := fixture.New(seed)

	if suggest > 0 {
		for _, s := range gen.TeamNameSuggestions(suggest) {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return fmt.Errorf("fixture: %w", err)
			}
		}
		return nil
	}

	if name == "" {
		name = gen.TeamName()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(gen.Board(name)); err != nil {
		return fmt.Errorf("fixture: %w", err)
	}
	return nil
}
