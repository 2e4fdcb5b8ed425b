package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/dhamidi/webxml/grammar"
	"github.com/spf13/cobra"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "grammar",
		Short:         "EBNF grammar tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarShowCmd())
	cmd.AddCommand(newGrammarMatchCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check [file]",
		Short:         "Parse and verify an EBNF grammar (defaults to the built-in grammar)",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var filename string
			if len(args) == 1 {
				filename = args[0]
			}
			g, err := loadGrammar(filename)
			if err != nil {
				printErrors(out, err)
				return err
			}

			if startProduction == "" {
				return nil
			}
			if err := grammar.Verify(g, startProduction); err != nil {
				printErrors(out, err)
				return err
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newGrammarShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the built-in grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(grammar.Source())
			return err
		},
	}
}

func newGrammarMatchCmd() *cobra.Command {
	var grammarFile, startProduction string

	cmd := &cobra.Command{
		Use:   "match <file>...",
		Short: "Check documents against the structural productions of a grammar",
		Long: `Tokenize each document with the lexical productions of the grammar and
check the token stream against the structural productions. Tag names are
not compared, so mismatched end tags are only reported by "check".`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(grammarFile)
			if err != nil {
				return err
			}
			r, err := grammar.NewRecognizer(g, startProduction)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, filename := range args {
				data, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
				tokens, err := grammar.NewLexer(g, bytes.Runes(data), filename).Tokenize()
				if err != nil {
					return fmt.Errorf("tokenize: %w", err)
				}
				if err := r.Recognize(tokens); err != nil {
					fmt.Fprintln(out, err)
					failed++
					continue
				}
				fmt.Fprintf(out, "%s: ok\n", filename)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d documents did not match", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&grammarFile, "grammar", "", "EBNF grammar file (defaults to the built-in grammar)")
	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production")

	return cmd
}

// printErrors prints each error of an ebnf error list on its own line.
func printErrors(w io.Writer, err error) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		v := reflect.ValueOf(e)
		if v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				fmt.Fprintln(w, v.Index(i).Interface())
			}
			return
		}
	}
	fmt.Fprintln(w, err)
}
