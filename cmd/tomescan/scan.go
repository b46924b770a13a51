package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tomelang/tree-sitter-tome/sitter"
	"github.com/tomelang/tree-sitter-tome/tome"
)

type scanOptions struct {
	jsonOut bool
	check   bool
	debug   bool
}

// newRootCommand builds the tomescan command. The filesystem and the
// output writer are injected so tests can run the command against an
// in-memory filesystem and a buffer.
func newRootCommand(fs afero.Fs, out io.Writer) *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "tomescan [file]",
		Short: "Tokenize a tome string literal",
		Long: `tomescan reads a tome string literal from a file (or stdin) and
prints one line per token. Interpolations (#{...}) are tokenized down
to their delimiters; the embedded expressions are not parsed.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.debug {
				log.SetLevel(log.DebugLevel)
			}
			if opts.check {
				return runCheck(out)
			}
			src, err := readSource(fs, cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return runScan(out, src, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "emit tokens as a JSON array")
	cmd.Flags().BoolVar(&opts.check, "check", false, "print the language support report and exit")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	return cmd
}

func readSource(fs afero.Fs, stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 {
		src, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return src, nil
	}
	src, err := afero.ReadFile(fs, args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return src, nil
}

func runScan(out io.Writer, src []byte, opts *scanOptions) error {
	toks, err := tome.Tokenize(src)
	if err != nil {
		if !errors.Is(err, tome.ErrUnterminated) {
			return err
		}
		log.Warn("string literal is unterminated")
	}

	lang := tome.Language()
	for _, tok := range toks {
		log.WithFields(log.Fields{
			"symbol": lang.SymbolName(tok.Symbol),
			"start":  tok.StartByte,
			"end":    tok.EndByte,
		}).Debug("token")
	}

	if opts.jsonOut {
		return writeJSON(out, lang, toks)
	}
	return writeText(out, lang, toks)
}

func writeText(out io.Writer, lang *sitter.Language, toks []sitter.Token) error {
	for _, tok := range toks {
		_, err := fmt.Fprintf(out, "%-16s [%d:%d - %d:%d] %q\n",
			lang.SymbolName(tok.Symbol),
			tok.StartPoint.Row, tok.StartPoint.Column,
			tok.EndPoint.Row, tok.EndPoint.Column,
			tok.Text)
		if err != nil {
			return err
		}
	}
	return nil
}

type tokenJSON struct {
	Type       string    `json:"type"`
	Text       string    `json:"text"`
	StartByte  uint32    `json:"start_byte"`
	EndByte    uint32    `json:"end_byte"`
	StartPoint [2]uint32 `json:"start_point"`
	EndPoint   [2]uint32 `json:"end_point"`
}

func writeJSON(out io.Writer, lang *sitter.Language, toks []sitter.Token) error {
	entries := make([]tokenJSON, 0, len(toks))
	for _, tok := range toks {
		entries = append(entries, tokenJSON{
			Type:       lang.SymbolName(tok.Symbol),
			Text:       tok.Text,
			StartByte:  tok.StartByte,
			EndByte:    tok.EndByte,
			StartPoint: [2]uint32{tok.StartPoint.Row, tok.StartPoint.Column},
			EndPoint:   [2]uint32{tok.EndPoint.Row, tok.EndPoint.Column},
		})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = out.Write(data)
	return err
}

func runCheck(out io.Writer) error {
	report := sitter.EvaluateLexSupport(tome.Language())
	fmt.Fprintf(out, "language: %s\n", report.Name)
	fmt.Fprintf(out, "version:  %d (compatible: %t)\n", report.LanguageVersion, report.VersionCompatible)
	fmt.Fprintf(out, "backend:  %s (%s)\n", report.Backend, report.Reason)
	fmt.Fprintf(out, "external: required=%t scanner=%t map-aligned=%t\n",
		report.RequiresExternalScanner, report.HasExternalScanner, report.ExternalMapAligned)
	if !report.Supported() {
		return fmt.Errorf("language %s is not supported: %s", report.Name, report.Reason)
	}
	return nil
}
