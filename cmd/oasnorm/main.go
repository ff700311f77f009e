package main

import (
	"fmt"
	"os"

	oasnorm "github.com/erraggy/oasnorm"
	"github.com/erraggy/oasnorm/cmd/oasnorm/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasnorm v%s\n", oasnorm.Version())
	case "help", "-h", "--help":
		printUsage()
	case "normalize":
		if err := commands.HandleNormalize(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "hoist":
		if err := commands.HandleHoist(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "canon":
		if err := commands.HandleCanon(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("oasnorm v%s - OpenAPI document normalizer\n\n", oasnorm.Version())
	fmt.Println("Usage: oasnorm <command> [flags] [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  normalize   Apply rule-driven fixes for generator quirks")
	fmt.Println("  hoist       Extract inline object schemas into components/schemas")
	fmt.Println("  canon       Normalize then hoist in a single pipeline")
	fmt.Println("  mcp         Start an MCP server over stdio")
	fmt.Println("  version     Print the oasnorm version")
	fmt.Println("  help        Show this help message")
	fmt.Println()
	fmt.Println("Run 'oasnorm <command> --help' for command-specific flags.")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  oasnorm normalize -o fixed.yaml openapi.yaml")
	fmt.Println("  oasnorm hoist -o hoisted.yaml fixed.yaml")
	fmt.Println("  oasnorm canon -o canonical.yaml openapi.yaml")
	fmt.Println("  cat openapi.yaml | oasnorm canon -q - > canonical.yaml")
}
