package main

import (
	"fmt"
	"os"

	"github.com/nisago/portfolio-projection/internal/calculation"
	"github.com/nisago/portfolio-projection/internal/config"
	"github.com/nisago/portfolio-projection/internal/domain"
	"github.com/nisago/portfolio-projection/internal/output"
	"github.com/spf13/cobra"
)

var (
	inputFile  string
	formatName string
	outFile    string
	saveResult bool
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nisaproj",
		Short: "NISA-aware portfolio projection",
		Long: "Projects future portfolio value year by year from a starting balance and\n" +
			"recurring investment plans, allocating contributions across the NISA\n" +
			"tsumitate and growth quotas with annual and lifetime caps.",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "", "projection request YAML file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Run a projection and print the result",
		RunE:  runProject,
	}
	projectCmd.Flags().StringVarP(&formatName, "format", "f", "console", "output format (console, csv, json)")
	projectCmd.Flags().StringVarP(&outFile, "output", "o", "", "write to file instead of stdout")
	projectCmd.Flags().BoolVar(&saveResult, "save", false, "write to a timestamped file in the current directory")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a request against projected NISA caps without running it",
		RunE:  runValidate,
	}

	exampleCmd := &cobra.Command{
		Use:   "example",
		Short: "Write an example projection request file",
		RunE:  runExample,
	}
	exampleCmd.Flags().StringVarP(&outFile, "output", "o", "projection_request.yaml", "destination file")

	rootCmd.AddCommand(projectCmd, validateCmd, exampleCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadInput() (*domain.ProjectionInput, error) {
	if inputFile == "" {
		return nil, fmt.Errorf("an input file is required (use --input)")
	}
	return config.NewInputParser().LoadFromFile(inputFile)
}

func newEngine() *calculation.ProjectionEngine {
	engine := calculation.NewProjectionEngine()
	if verbose {
		engine.Debug = true
		engine.SetLogger(calculation.WriterLogger{W: os.Stderr, Verbose: true})
	}
	return engine
}

func runProject(cmd *cobra.Command, args []string) error {
	input, err := loadInput()
	if err != nil {
		return err
	}

	formatter := output.GetFormatterByName(formatName)
	if formatter == nil {
		return fmt.Errorf("unknown format %q (available: %v)", formatName, output.AvailableFormatterNames())
	}

	result, err := newEngine().RunProjection(input)
	if err != nil {
		return describeProjectionError(err)
	}

	if saveResult {
		path, err := output.WriteFormatted(formatter, result, ".")
		if err != nil {
			return fmt.Errorf("failed to save result: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	}

	data, err := formatter.Format(result)
	if err != nil {
		return fmt.Errorf("formatting failed: %w", err)
	}

	if outFile != "" {
		if err := os.WriteFile(outFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outFile, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outFile)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runValidate(cmd *cobra.Command, args []string) error {
	input, err := loadInput()
	if err != nil {
		return err
	}
	if err := newEngine().Validate(input); err != nil {
		return describeProjectionError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "ok: all plans fit within NISA quotas for the projected years")
	return nil
}

func runExample(cmd *cobra.Command, args []string) error {
	parser := config.NewInputParser()
	data, err := parser.MarshalInput(parser.CreateExampleInput())
	if err != nil {
		return err
	}
	if err := os.WriteFile(outFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outFile, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outFile)
	return nil
}

// describeProjectionError adds a hint for cap violations, which users fix
// by adjusting the offending plan rather than the request parameters.
func describeProjectionError(err error) error {
	if cve, ok := domain.AsCapViolationError(err); ok {
		return fmt.Errorf("%w\nhint: enable continue_if_limit_exceeded on the plans targeting %s, or reduce their amounts", cve, cve.AccountType)
	}
	return err
}
