package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/webxml/format"
	"github.com/dhamidi/webxml/xml/dom"
	"github.com/dhamidi/webxml/xml/parser"
	"github.com/spf13/cobra"
)

// parserFlags are the parser options shared by commands that parse
// documents.
type parserFlags struct {
	namespace string
	maxDepth  int
	strict    bool
}

func (f *parserFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", parser.DefaultMaxDepth, "maximum element nesting depth (0 for no limit)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "reject duplicate attributes, '--' in comments, stray '&' in attribute values and content after the root element")
}

func (f *parserFlags) registerNamespace(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.namespace, "namespace", "", "namespace tag for every element and attribute name")
}

func (f *parserFlags) options() []parser.Option {
	opts := []parser.Option{parser.WithMaxDepth(f.maxDepth)}
	if f.strict {
		opts = append(opts, parser.WithStrict())
	}
	return opts
}

func (f *parserFlags) parseFile(filename string) (*dom.Document, error) {
	var r io.Reader = os.Stdin
	name := "<stdin>"
	if filename != "-" {
		file, err := os.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}
		defer file.Close()
		r = file
		name = filename
	}

	opts := append(f.options(), parser.WithFile(name))
	return parser.ParseReader(r, f.namespace, opts...)
}

func newParseCmd() *cobra.Command {
	var pf parserFlags
	var outputFormat string
	var indent string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a document and print its tree",
		Long:  "Parse a document and print its tree. Use - to read from standard input.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := pf.parseFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewJSONEncoder(out)
			case "xml":
				encoder = format.NewXMLEncoder(out, format.WithIndent(indent))
			case "lines":
				encoder = format.NewLineEncoder(out)
			case "tree":
				_, err := io.WriteString(out, dom.Dump(doc))
				return err
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if err := encoder.Encode(doc); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	pf.register(cmd)
	pf.registerNamespace(cmd)
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (json, xml, lines, tree)")
	cmd.Flags().StringVar(&indent, "indent", "", "indentation for xml output")

	return cmd
}
