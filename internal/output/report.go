package output

import (
	"fmt"
	"os"

	"github.com/rpgo/dreamcalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport writes results in the named format to a timestamped file in
// dir and returns its path.
func GenerateReport(results *domain.PlanComparison, format, dir, currency string) (string, error) {
	f, err := NewFormatter(format, currency)
	if err != nil {
		return "", err
	}
	path, err := WriteFormatted(f, results, dir)
	if err != nil {
		return "", fmt.Errorf("failed to write %s report: %w", f.Name(), err)
	}
	return path, nil
}

// MarshalConfiguration encodes a plan as YAML.
func MarshalConfiguration(config *domain.Configuration) ([]byte, error) {
	return yaml.Marshal(config)
}

func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := MarshalConfiguration(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
