package output

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/iwvelando/household-budget/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Export writes v as a configuration document in the given format.
func Export(w io.Writer, v interface{}, exportFormat string) error {
	switch exportFormat {
	case constants.ExportFormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return encoder.Close()
	case constants.ExportFormatTOML:
		if err := toml.NewEncoder(w).Encode(v); err != nil {
			return fmt.Errorf("failed to encode toml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported export format %q", exportFormat)
	}
}
