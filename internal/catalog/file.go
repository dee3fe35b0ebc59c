package catalog

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// inventoryFile is the YAML layout of a tool inventory file
//
//	tools:
//	  - code: LADW
//	    type: Ladder
//	    brand: Werner
//	    daily_charge: 1.99
//	    weekday_charge: true
//	    weekend_charge: true
//	    holiday_charge: false
type inventoryFile struct {
	Tools []inventoryTool `yaml:"tools"`
}

type inventoryTool struct {
	Code          string      `yaml:"code"`
	Type          string      `yaml:"type"`
	Brand         string      `yaml:"brand"`
	DailyCharge   yamlDecimal `yaml:"daily_charge"`
	WeekdayCharge bool        `yaml:"weekday_charge"`
	WeekendCharge bool        `yaml:"weekend_charge"`
	HolidayCharge bool        `yaml:"holiday_charge"`
}

// yamlDecimal decodes a YAML scalar into an exact decimal without passing
// through float64.
type yamlDecimal struct {
	decimal.Decimal
	set bool
}

// UnmarshalYAML implements yaml.Unmarshaler
func (d *yamlDecimal) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: daily_charge must be a number", node.Line)
	}
	value, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid daily_charge %q: %w", node.Line, node.Value, err)
	}
	d.Decimal = value
	d.set = true
	return nil
}

// LoadFile loads a tool inventory from a YAML file
func LoadFile(path string, logger *zap.Logger) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory file: %w", err)
	}

	tools, err := ParseInventory(data, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse inventory file %s: %w", path, err)
	}

	m, err := NewMemory(tools...)
	if err != nil {
		return nil, fmt.Errorf("invalid inventory file %s: %w", path, err)
	}

	logger.Info("Inventory file loaded",
		zap.String("file", path),
		zap.Int("tools", m.Len()))

	return m, nil
}

// ParseInventory decodes YAML inventory data. Entries without a code or
// daily charge are skipped with a warning; later duplicates of a code are
// skipped as well.
func ParseInventory(data []byte, logger *zap.Logger) ([]Tool, error) {
	var inv inventoryFile
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(inv.Tools))
	tools := make([]Tool, 0, len(inv.Tools))

	for i, entry := range inv.Tools {
		if entry.Code == "" {
			logger.Warn("Skipping inventory entry without code", zap.Int("index", i))
			continue
		}
		if !entry.DailyCharge.set {
			logger.Warn("Skipping inventory entry without daily charge",
				zap.String("code", entry.Code))
			continue
		}
		if seen[entry.Code] {
			logger.Warn("Skipping duplicate inventory entry",
				zap.String("code", entry.Code))
			continue
		}
		seen[entry.Code] = true

		tools = append(tools, Tool{
			Code:             entry.Code,
			Type:             entry.Type,
			Brand:            entry.Brand,
			DailyCharge:      entry.DailyCharge.Decimal,
			ChargesOnWeekday: entry.WeekdayCharge,
			ChargesOnWeekend: entry.WeekendCharge,
			ChargesOnHoliday: entry.HolidayCharge,
		})
	}

	return tools, nil
}
