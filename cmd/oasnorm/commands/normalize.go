package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	oasnorm "github.com/erraggy/oasnorm"
	"github.com/erraggy/oasnorm/internal/cliutil"
	"github.com/erraggy/oasnorm/normalizer"
)

// NormalizeFlags contains flags for the normalize command
type NormalizeFlags struct {
	Output string
	Format string
	Quiet  bool
}

// SetupNormalizeFlags creates and configures a FlagSet for the normalize command.
// Returns the FlagSet and a NormalizeFlags struct with bound flag variables.
func SetupNormalizeFlags() (*flag.FlagSet, *NormalizeFlags) {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	flags := &NormalizeFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "format", "", "output format: json or yaml (default: follow input extension)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no diagnostic messages")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasnorm normalize [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Apply rule-driven fixes for generator quirks in an OpenAPI document.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nApplied Rules:\n")
		cliutil.Writef(fs.Output(), "  - Vendor media-type cleanup (multipart/form-data, text/plain,\n")
		cliutil.Writef(fs.Output(), "    application/json file uploads)\n")
		cliutil.Writef(fs.Output(), "  - const keywords rewritten as single-value enums\n")
		cliutil.Writef(fs.Output(), "  - Fixed descriptions injected for 200/201/400/401/500 responses\n")
		cliutil.Writef(fs.Output(), "  - Nonstandard \"null\" type tags rewritten\n")
		cliutil.Writef(fs.Output(), "  - Collapsible anyOf unions folded into the enclosing schema\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasnorm normalize openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasnorm normalize -o fixed.yaml openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  cat openapi.yaml | oasnorm normalize -q - > fixed.yaml\n")
		cliutil.Writef(fs.Output(), "\nPipelining:\n")
		cliutil.Writef(fs.Output(), "  oasnorm normalize -q api.yaml | oasnorm hoist -q -\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Normalizing completed (with or without changes)\n")
		cliutil.Writef(fs.Output(), "  1    Failed to read, parse, or write the document\n")
	}

	return fs, flags
}

// HandleNormalize executes the normalize command
func HandleNormalize(args []string) error {
	fs, flags := SetupNormalizeFlags()

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
		return fmt.Errorf("normalize command requires exactly one file path or '-' for stdin")
	}

	docPath := fs.Arg(0)

	startTime := time.Now()
	doc, err := LoadDocument(docPath)
	if err != nil {
		return err
	}

	result, err := normalizer.NormalizeWithOptions(normalizer.WithDocument(doc))
	if err != nil {
		return fmt.Errorf("normalizing document: %w", err)
	}
	totalTime := time.Since(startTime)

	// Print diagnostic messages (to stderr to keep stdout clean for pipelining)
	if !flags.Quiet {
		cliutil.Writef(os.Stderr, "OpenAPI Document Normalizer\n")
		cliutil.Writef(os.Stderr, "===========================\n\n")
		cliutil.Writef(os.Stderr, "oasnorm version: %s\n", oasnorm.Version())
		if docPath == StdinFilePath {
			cliutil.Writef(os.Stderr, "Document: <stdin>\n")
		} else {
			cliutil.Writef(os.Stderr, "Document: %s\n", docPath)
		}
		cliutil.Writef(os.Stderr, "Total Time: %v\n\n", totalTime)

		if result.HasChanges() {
			cliutil.Writef(os.Stderr, "Changes Applied (%d):\n", result.ChangeCount)
			for _, change := range result.Changes {
				cliutil.Writef(os.Stderr, "  - [%s] %s: %s\n", change.Type, change.Path, change.Description)
			}
			cliutil.Writef(os.Stderr, "\n✓ Applied %d change(s)\n", result.ChangeCount)
		} else {
			cliutil.Writef(os.Stderr, "✓ No changes needed - document is already canonical\n")
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
