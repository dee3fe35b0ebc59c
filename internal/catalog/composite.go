package catalog

import (
	"go.uber.org/zap"
)

// Composite implements Catalog with fallback strategy
// Primary: configured inventory (file or postgres)
// Fallback: usually the built-in inventory
type Composite struct {
	primary  Catalog
	fallback Catalog
	logger   *zap.Logger
}

// NewComposite creates a new Composite catalog
func NewComposite(primary, fallback Catalog, logger *zap.Logger) *Composite {
	return &Composite{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// FindByCode looks the code up in the primary catalog, then the fallback
func (c *Composite) FindByCode(code string) (Tool, bool) {
	if tool, ok := c.primary.FindByCode(code); ok {
		return tool, true
	}

	tool, ok := c.fallback.FindByCode(code)
	if ok {
		c.logger.Debug("Tool not in primary catalog, using fallback",
			zap.String("code", code))
	}
	return tool, ok
}

// List returns the union of both catalogs sorted by code; primary entries win
func (c *Composite) List() []Tool {
	primary := c.primary.List()
	fallback := c.fallback.List()

	merged := make([]Tool, 0, len(primary)+len(fallback))
	i, j := 0, 0
	for i < len(primary) || j < len(fallback) {
		switch {
		case j >= len(fallback) || (i < len(primary) && primary[i].Code < fallback[j].Code):
			merged = append(merged, primary[i])
			i++
		case i >= len(primary) || fallback[j].Code < primary[i].Code:
			merged = append(merged, fallback[j])
			j++
		default:
			merged = append(merged, primary[i])
			i++
			j++
		}
	}
	return merged
}
