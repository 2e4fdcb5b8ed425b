package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dhamidi/webxml/grammar"
	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"
)

func newTokensCmd() *cobra.Command {
	var grammarFile string

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens of a document as seen by the grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			g, err := loadGrammar(grammarFile)
			if err != nil {
				return err
			}

			lexer := grammar.NewLexer(g, bytes.Runes(data), filename)
			tokens, err := lexer.Tokenize()
			if err != nil {
				return fmt.Errorf("tokenize: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, tok := range tokens {
				fmt.Fprintln(out, tok)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&grammarFile, "grammar", "", "EBNF grammar file (defaults to the built-in grammar)")

	return cmd
}

// loadGrammar loads filename, or the built-in grammar when it is empty.
func loadGrammar(filename string) (ebnf.Grammar, error) {
	if filename == "" {
		return grammar.Load()
	}
	return grammar.LoadFile(filename)
}
