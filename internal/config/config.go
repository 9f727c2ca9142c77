// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/iwvelando/household-budget/internal/budget"
	"github.com/iwvelando/household-budget/pkg/constants"
	"github.com/iwvelando/household-budget/pkg/mathutil"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for household-budget.
type Configuration struct {
	Loan      LoanConfig      `yaml:"loan" toml:"loan" json:"loan"`
	Income    IncomeConfig    `yaml:"income" toml:"income" json:"income"`
	Household HouseholdConfig `yaml:"household" toml:"household" json:"household"`
	Expenses  []ExpenseConfig `yaml:"expenses" toml:"expenses" json:"expenses"`
	Logging   LoggingConfig   `yaml:"logging,omitempty" toml:"logging,omitempty" json:"logging,omitempty"`
	Output    OutputConfig    `yaml:"output,omitempty" toml:"output,omitempty" json:"output,omitempty"`

	// coerced holds a warning for every numeric value that was replaced
	// or truncated while decoding.
	coerced []string
}

// LoanConfig holds the mortgage terms.
type LoanConfig struct {
	TotalLoanAmount float64 `yaml:"totalLoanAmount" toml:"totalLoanAmount" json:"totalLoanAmount"`
	DownPayment     float64 `yaml:"downPayment" toml:"downPayment" json:"downPayment"`
	InterestRate    float64 `yaml:"interestRate" toml:"interestRate" json:"interestRate"`    // annual percent
	LoanTermYears   int     `yaml:"loanTermYears" toml:"loanTermYears" json:"loanTermYears"` // years
}

// IncomeConfig holds the household's monthly income.
type IncomeConfig struct {
	PersonAIncome      float64 `yaml:"personAIncome" toml:"personAIncome" json:"personAIncome"`
	PersonBIncome      float64 `yaml:"personBIncome" toml:"personBIncome" json:"personBIncome"`
	RentalIncome       float64 `yaml:"rentalIncome" toml:"rentalIncome" json:"rentalIncome"`
	GovernmentHelp     float64 `yaml:"governmentHelp" toml:"governmentHelp" json:"governmentHelp"`
	YearlyIncomeGrowth float64 `yaml:"yearlyIncomeGrowth" toml:"yearlyIncomeGrowth" json:"yearlyIncomeGrowth"` // percent
}

// HouseholdConfig holds settings about the people sharing the budget.
type HouseholdConfig struct {
	Earners int `yaml:"earners" toml:"earners" json:"earners"`
}

// ExpenseConfig is one recurring monthly expense.
type ExpenseConfig struct {
	Name   string  `yaml:"name" toml:"name" json:"name"`
	Amount float64 `yaml:"amount" toml:"amount" json:"amount"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" toml:"level,omitempty" json:"level,omitempty"`                // debug, info, warn, error
	Format     string `yaml:"format,omitempty" toml:"format,omitempty" json:"format,omitempty"`             // json, console
	OutputFile string `yaml:"outputFile,omitempty" toml:"outputFile,omitempty" json:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" toml:"format,omitempty" json:"format,omitempty"` // pretty, csv, json
}

// Default returns the configuration the estimator starts with.
func Default() *Configuration {
	state := budget.DefaultState()
	conf := &Configuration{
		Loan: LoanConfig{
			TotalLoanAmount: state.Loan.TotalLoanAmount,
			DownPayment:     state.Loan.DownPayment,
			InterestRate:    state.Loan.InterestRate,
			LoanTermYears:   state.Loan.LoanTermYears,
		},
		Income: IncomeConfig{
			PersonAIncome:      state.Income.PersonAIncome,
			PersonBIncome:      state.Income.PersonBIncome,
			RentalIncome:       state.Income.RentalIncome,
			GovernmentHelp:     state.Income.GovernmentHelp,
			YearlyIncomeGrowth: state.Income.YearlyIncomeGrowth,
		},
		Household: HouseholdConfig{Earners: state.Earners},
	}
	for _, expense := range state.Expenses.Entries() {
		conf.Expenses = append(conf.Expenses, ExpenseConfig{
			Name:   expense.Name,
			Amount: expense.Amount.InexactFloat64(),
		})
	}
	return conf
}

// LoadConfiguration takes a file path as input and loads the configuration
// there. The format follows the file extension (YAML when there is none).
// Keys missing from the file keep their defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	if filepath.Ext(configPath) == "" {
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

// newViper returns an isolated viper instance with defaults and BUDGET_*
// environment overrides registered.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := Default()
	v.SetDefault("loan.totalLoanAmount", defaults.Loan.TotalLoanAmount)
	v.SetDefault("loan.downPayment", defaults.Loan.DownPayment)
	v.SetDefault("loan.interestRate", defaults.Loan.InterestRate)
	v.SetDefault("loan.loanTermYears", defaults.Loan.LoanTermYears)
	v.SetDefault("income.personAIncome", defaults.Income.PersonAIncome)
	v.SetDefault("income.personBIncome", defaults.Income.PersonBIncome)
	v.SetDefault("income.rentalIncome", defaults.Income.RentalIncome)
	v.SetDefault("income.governmentHelp", defaults.Income.GovernmentHelp)
	v.SetDefault("income.yearlyIncomeGrowth", defaults.Income.YearlyIncomeGrowth)
	v.SetDefault("household.earners", defaults.Household.Earners)

	expenses := make([]map[string]interface{}, 0, len(defaults.Expenses))
	for _, expense := range defaults.Expenses {
		expenses = append(expenses, map[string]interface{}{"name": expense.Name, "amount": expense.Amount})
	}
	v.SetDefault("expenses", expenses)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	hook := mapstructure.ComposeDecodeHookFunc(
		configuration.coerceNumericText,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)

	if err := v.Unmarshal(&configuration, viper.DecodeHook(hook)); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// coerceNumericText turns text bound for a numeric field into a number, using
// 0 for text that does not parse. Environment overrides always arrive as text.
// Values bound for integer fields go through wholeNumber.
func (conf *Configuration) coerceNumericText(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	integral := false
	switch to.Kind() {
	case reflect.Float32, reflect.Float64:
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		integral = true
	default:
		return data, nil
	}

	var value float64
	switch from.Kind() {
	case reflect.String:
		text, _ := data.(string)
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err != nil || !mathutil.IsFinite(parsed) {
			conf.coerced = append(conf.coerced, fmt.Sprintf("value %q is not a number, using 0", text))
		}
		value = budget.CoerceNumber(text)
	case reflect.Float32, reflect.Float64:
		if !integral {
			return data, nil
		}
		value = reflect.ValueOf(data).Float()
	default:
		return data, nil
	}

	if !integral {
		return value, nil
	}
	return conf.wholeNumber(value), nil
}

// wholeNumber converts value for an integer field. Fractions are truncated
// and anything outside the int32 range becomes 0; both are recorded.
func (conf *Configuration) wholeNumber(value float64) int64 {
	text := strconv.FormatFloat(value, 'g', -1, 64)
	if !mathutil.IsFinite(value) || value < math.MinInt32 || value > math.MaxInt32 {
		conf.coerced = append(conf.coerced, fmt.Sprintf("value %s is out of range for a whole number, using 0", text))
		return 0
	}
	whole := math.Trunc(value)
	if whole != value {
		conf.coerced = append(conf.coerced, fmt.Sprintf("value %s is not a whole number, using %d", text, int64(whole)))
	}
	return int64(whole)
}
