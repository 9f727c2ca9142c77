package main

import (
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/household-budget/internal/config"
	"github.com/iwvelando/household-budget/pkg/constants"
	"github.com/iwvelando/household-budget/pkg/output"
	"github.com/iwvelando/household-budget/pkg/validation"
	"github.com/spf13/cobra"
)

var (
	flagInitFormat string
	flagInitOut    string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration with the default household",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if flagInitOut == "" {
			return writeStarterConfig(cmd.OutOrStdout(), flagInitFormat)
		}

		file, err := os.Create(flagInitOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", flagInitOut, err)
		}
		if err := writeStarterConfig(file, flagInitFormat); err != nil {
			_ = file.Close()
			return err
		}
		return file.Close()
	},
}

func init() {
	initCmd.Flags().StringVarP(&flagInitFormat, "format", "f", constants.ExportFormatYAML, "configuration format: yaml, toml")
	initCmd.Flags().StringVar(&flagInitOut, "out", "", "file to write (default stdout)")
	rootCmd.AddCommand(initCmd)
}

func writeStarterConfig(w io.Writer, format string) error {
	if err := validation.ValidateExportFormat(format); err != nil {
		return err
	}

	starter := config.Default()
	starter.Logging = config.LoggingConfig{Level: "info", Format: "json"}
	starter.Output = config.OutputConfig{Format: constants.OutputFormatPretty}
	return output.Export(w, starter, format)
}
