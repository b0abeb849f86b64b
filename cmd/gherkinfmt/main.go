// Command gherkinfmt parses a Gherkin feature file with the native
// gherkin state-machine parser and prints a styled tree (or JSON) of it,
// or its tag list, mapping a ParserError to a non-zero exit (§6).
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moonrockz/gherkin"
	"github.com/moonrockz/gherkin/internal/ghlog"
)

const defaultSource = `@smoke
Feature: User Authentication
  As a registered user
  I want to log in to the application
  So that I can access my account

  Background:
    Given the application is running

  Scenario: Successful login
    Given a registered user with email "alice@example.com"
    When they enter valid credentials
    Then they should see the dashboard
    And they should see a welcome message

  Scenario: Failed login with wrong password
    Given a registered user with email "alice@example.com"
    When they enter an incorrect password
    Then they should see an error message
`

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "gherkinfmt",
		Short:         "Parse and render Gherkin feature files",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to .gherkinfmt.toml")

	root.AddCommand(parseCmd(), tagsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseCmd() *cobra.Command {
	var language string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a feature file and print its structure",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if language != "" {
				cfg.Language = language
			}
			if asJSON {
				cfg.Output = "json"
			}

			logger, err := ghlog.NewWithStrings(os.Stderr, cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}

			source, filename, err := readSource(args)
			if err != nil {
				return err
			}

			p, err := gherkin.NewParser(cfg.Language,
				gherkin.WithLogger(logger),
				gherkin.WithStripTrailingColon(cfg.StripColon))
			if err != nil {
				return err
			}
			feature, err := p.ParseFeature(source, filename)
			if err != nil {
				var perr *gherkin.ParserError
				if errors.As(err, &perr) {
					renderError(os.Stderr, perr)
				}
				return err
			}

			if cfg.Output == "json" {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(feature)
			}
			renderTree(os.Stdout, feature)
			return nil
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", "", "language tag (default from config, else en)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the parsed AST as JSON instead of a tree")
	return cmd
}

func tagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags [file]",
		Short: "Print every tag found in a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			source, _, err := readSource(args)
			if err != nil {
				return err
			}
			tags, err := gherkin.ParseTags(tagLinesOf(source))
			if err != nil {
				return err
			}
			for _, t := range tags {
				fmt.Printf("@%s\n", t.Name)
			}
			return nil
		},
	}
}

// tagLinesOf keeps only the lines of source that open tags; ParseTags
// accepts tag lines, not whole feature files.
func tagLinesOf(source string) string {
	var b strings.Builder
	for _, line := range strings.Split(source, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "@") {
			b.WriteString(strings.TrimSpace(line))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func readSource(args []string) (source, filename string, err error) {
	if len(args) == 0 {
		return defaultSource, "<default>", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), args[0], nil
}
