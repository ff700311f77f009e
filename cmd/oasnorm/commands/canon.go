package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	oasnorm "github.com/erraggy/oasnorm"
	"github.com/erraggy/oasnorm/hoister"
	"github.com/erraggy/oasnorm/internal/cliutil"
	"github.com/erraggy/oasnorm/normalizer"
)

// CanonFlags contains flags for the canon command
type CanonFlags struct {
	Output string
	Format string
	Quiet  bool
}

// SetupCanonFlags creates and configures a FlagSet for the canon command.
// Returns the FlagSet and a CanonFlags struct with bound flag variables.
func SetupCanonFlags() (*flag.FlagSet, *CanonFlags) {
	fs := flag.NewFlagSet("canon", flag.ContinueOnError)
	flags := &CanonFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "format", "", "output format: json or yaml (default: follow input extension)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no diagnostic messages")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasnorm canon [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Run the full canonicalization pipeline: normalize generator quirks,\n")
		cliutil.Writef(fs.Output(), "then hoist inline object schemas into components/schemas.\n")
		cliutil.Writef(fs.Output(), "Equivalent to: oasnorm normalize -q <file> | oasnorm hoist -q -\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasnorm canon openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasnorm canon -o canonical.yaml openapi.yaml\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Canonicalization completed\n")
		cliutil.Writef(fs.Output(), "  1    Failed to read, parse, or write the document\n")
	}

	return fs, flags
}

// HandleCanon executes the canon command
func HandleCanon(args []string) error {
	fs, flags := SetupCanonFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("canon command requires exactly one file path or '-' for stdin")
	}

	docPath := fs.Arg(0)

	startTime := time.Now()
	doc, err := LoadDocument(docPath)
	if err != nil {
		return err
	}

	// The rule engine's full output is the hoisting engine's input.
	normResult, err := normalizer.NormalizeWithOptions(normalizer.WithDocument(doc))
	if err != nil {
		return fmt.Errorf("normalizing document: %w", err)
	}
	hoistResult, err := hoister.HoistWithOptions(hoister.WithDocument(normResult.Document))
	if err != nil {
		return fmt.Errorf("hoisting document: %w", err)
	}
	totalTime := time.Since(startTime)

	if !flags.Quiet {
		cliutil.Writef(os.Stderr, "OpenAPI Document Canonicalizer\n")
		cliutil.Writef(os.Stderr, "==============================\n\n")
		cliutil.Writef(os.Stderr, "oasnorm version: %s\n", oasnorm.Version())
		if docPath == StdinFilePath {
			cliutil.Writef(os.Stderr, "Document: <stdin>\n")
		} else {
			cliutil.Writef(os.Stderr, "Document: %s\n", docPath)
		}
		cliutil.Writef(os.Stderr, "Total Time: %v\n\n", totalTime)
		cliutil.Writef(os.Stderr, "✓ Applied %d change(s), hoisted %d schema(s) (%d new, %d deduplicated)\n",
			normResult.ChangeCount, hoistResult.HoistCount,
			hoistResult.NewEntries, hoistResult.Deduplicated)
	}

	format := flags.Format
	if format == "" {
		format = DetectFormat(docPath)
	}
	if err := WriteDocument(hoistResult.Document, flags.Output, format); err != nil {
		return err
	}
	if flags.Output != "" && !flags.Quiet {
		cliutil.Writef(os.Stderr, "\nOutput written to: %s\n", flags.Output)
	}

	return nil
}
