// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/household-budget/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, format)
}

// ValidateExportFormat checks if a starter configuration can be written in format.
func ValidateExportFormat(format string) error {
	if format != constants.ExportFormatYAML && format != constants.ExportFormatTOML {
		return fmt.Errorf("expected export format of %s or %s, got %s",
			constants.ExportFormatYAML, constants.ExportFormatTOML, format)
	}
	return nil
}
