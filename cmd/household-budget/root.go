package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/iwvelando/household-budget/internal/budget"
	"github.com/iwvelando/household-budget/internal/config"
	"github.com/iwvelando/household-budget/pkg/constants"
	"github.com/iwvelando/household-budget/pkg/output"
	"github.com/iwvelando/household-budget/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	flagConfig         string
	flagAddExpenses    []string
	flagRemoveExpenses []int
	flagOutputFormat   string
	flagLogLevel       string
)

var rootCmd = &cobra.Command{
	Use:          "household-budget",
	Short:        "Household mortgage and budget estimator",
	Long:         "Estimate the monthly mortgage payment, the household budget left after expenses, and a five year projection.",
	RunE:         runRoot,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", constants.DefaultConfigFile, "path to configuration file (yaml or toml)")
	rootCmd.Flags().StringArrayVarP(&flagAddExpenses, "add-expense", "a", nil, "add an expense as name=amount (repeatable)")
	rootCmd.Flags().IntSliceVarP(&flagRemoveExpenses, "remove-expense", "r", nil, "remove the expense with this id (repeatable)")
	rootCmd.Flags().StringVarP(&flagOutputFormat, "output-format", "o", "", "type of output override: pretty, csv, json")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level override (debug, info, warn, error)")
}

type budgetOptions struct {
	AddExpenses    []string
	RemoveExpenses []int
	OutputFormat   string
}

func runRoot(cmd *cobra.Command, _ []string) error {
	conf, err := loadConfiguration(flagConfig, cmd.Flags().Changed("config"))
	if err != nil {
		bootstrapError(fmt.Sprintf("failed to load configuration at %s", flagConfig), err)
		return err
	}

	logger, err := initializeLogger(conf.Logging, flagLogLevel)
	if err != nil {
		bootstrapError("failed to initialize logger", err)
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	opts := budgetOptions{
		AddExpenses:    flagAddExpenses,
		RemoveExpenses: flagRemoveExpenses,
		OutputFormat:   flagOutputFormat,
	}
	if err := renderBudget(cmd.OutOrStdout(), logger, conf, opts); err != nil {
		logger.Fatal("failed to compute budget",
			zap.String("op", "main.runRoot"),
			zap.Error(err),
		)
	}
	return nil
}

// loadConfiguration reads the config file. A missing file at the default
// location falls back to the built-in defaults; a missing file the user named
// explicitly is an error.
func loadConfiguration(path string, explicit bool) (*config.Configuration, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !explicit {
		return config.Default(), nil
	}
	return config.LoadConfiguration(path)
}

// renderBudget applies the expense edits, recomputes and writes the result.
func renderBudget(w io.Writer, logger *zap.Logger, conf *config.Configuration, opts budgetOptions) error {
	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if opts.OutputFormat != "" {
		outputFormat = opts.OutputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.renderBudget"),
		)
	}

	state, err := conf.State()
	if err != nil {
		return err
	}

	for _, id := range opts.RemoveExpenses {
		if !state.Expenses.Remove(id) {
			logger.Warn("no expense with that id, nothing removed",
				zap.String("op", "main.renderBudget"),
				zap.Int("id", id),
			)
		}
	}
	for _, entry := range opts.AddExpenses {
		name, amount, ok := parseExpenseFlag(entry)
		if ok {
			_, ok = state.Expenses.Add(name, amount)
		}
		if !ok {
			logger.Warn("skipping invalid expense, expected name=amount with a non-negative amount",
				zap.String("op", "main.renderBudget"),
				zap.String("expense", entry),
			)
		}
	}

	result, err := budget.NewEngine(logger).Recompute(state)
	if err != nil {
		return err
	}

	switch outputFormat {
	case constants.OutputFormatCSV:
		return output.CsvFormat(w, result)
	case constants.OutputFormatJSON:
		return output.JSONFormat(w, output.Report{Loan: state.Loan, Income: state.Income, Result: result, Warnings: warnings})
	default:
		return output.PrettyFormat(w, output.Report{Loan: state.Loan, Income: state.Income, Result: result, Warnings: warnings})
	}
}

// parseExpenseFlag splits name=amount at the last '='.
func parseExpenseFlag(value string) (name, amount string, ok bool) {
	idx := strings.LastIndex(value, "=")
	if idx <= 0 {
		return "", "", false
	}
	return value[:idx], value[idx+1:], true
}
