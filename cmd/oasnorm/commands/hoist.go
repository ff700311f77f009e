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
)

// HoistFlags contains flags for the hoist command
type HoistFlags struct {
	Output string
	Format string
	Quiet  bool
}

// SetupHoistFlags creates and configures a FlagSet for the hoist command.
// Returns the FlagSet and a HoistFlags struct with bound flag variables.
func SetupHoistFlags() (*flag.FlagSet, *HoistFlags) {
	fs := flag.NewFlagSet("hoist", flag.ContinueOnError)
	flags := &HoistFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "format", "", "output format: json or yaml (default: follow input extension)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no diagnostic messages")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasnorm hoist [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Extract inline object schemas into components/schemas and replace\n")
		cliutil.Writef(fs.Output(), "each occurrence with a $ref. Structurally identical schemas are\n")
		cliutil.Writef(fs.Output(), "de-duplicated into a single registry entry.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasnorm hoist openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasnorm hoist -o hoisted.yaml openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasnorm normalize -q api.yaml | oasnorm hoist -q -\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Hoisting completed (with or without hoisted schemas)\n")
		cliutil.Writef(fs.Output(), "  1    Failed to read, parse, or write the document\n")
	}

	return fs, flags
}

// HandleHoist executes the hoist command
func HandleHoist(args []string) error {
	fs, flags := SetupHoistFlags()

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
		return fmt.Errorf("hoist command requires exactly one file path or '-' for stdin")
	}

	docPath := fs.Arg(0)

	startTime := time.Now()
	doc, err := LoadDocument(docPath)
	if err != nil {
		return err
	}

	result, err := hoister.HoistWithOptions(hoister.WithDocument(doc))
	if err != nil {
		return fmt.Errorf("hoisting document: %w", err)
	}
	totalTime := time.Since(startTime)

	// Print diagnostic messages (to stderr to keep stdout clean for pipelining)
	if !flags.Quiet {
		cliutil.Writef(os.Stderr, "OpenAPI Schema Hoister\n")
		cliutil.Writef(os.Stderr, "======================\n\n")
		cliutil.Writef(os.Stderr, "oasnorm version: %s\n", oasnorm.Version())
		if docPath == StdinFilePath {
			cliutil.Writef(os.Stderr, "Document: <stdin>\n")
		} else {
			cliutil.Writef(os.Stderr, "Document: %s\n", docPath)
		}
		cliutil.Writef(os.Stderr, "Total Time: %v\n\n", totalTime)

		if result.HasHoists() {
			cliutil.Writef(os.Stderr, "Hoisted Schemas (%d):\n", result.HoistCount)
			for _, rec := range result.Hoisted {
				if rec.Deduplicated {
					cliutil.Writef(os.Stderr, "  - %s: %s (deduplicated)\n", rec.Name, rec.Path)
				} else {
					cliutil.Writef(os.Stderr, "  - %s: %s\n", rec.Name, rec.Path)
				}
			}
			cliutil.Writef(os.Stderr, "\n✓ Hoisted %d schema(s): %d new, %d deduplicated\n",
				result.HoistCount, result.NewEntries, result.Deduplicated)
		} else {
			cliutil.Writef(os.Stderr, "✓ No inline schemas to hoist\n")
		}
	}

	format := flags.Format
	if format == "" {
		format = DetectFormat(docPath)
	}
	if err := WriteDocument(result.Document, flags.Output, format); err != nil {
		return err
	}
	if flags.Output != "" && !flags.Quiet {
		cliutil.Writef(os.Stderr, "\nOutput written to: %s\n", flags.Output)
	}

	return nil
}
