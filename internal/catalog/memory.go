package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Memory is an immutable in-memory Catalog. It is populated once by
// NewMemory and safe for concurrent reads.
type Memory struct {
	tools map[string]Tool
	codes []string
}

// NewMemory creates a catalog from the given tools
func NewMemory(tools ...Tool) (*Memory, error) {
	m := &Memory{
		tools: make(map[string]Tool, len(tools)),
		codes: make([]string, 0, len(tools)),
	}

	for _, tool := range tools {
		if err := validateTool(tool); err != nil {
			return nil, err
		}
		if _, exists := m.tools[tool.Code]; exists {
			return nil, fmt.Errorf("duplicate tool code %s", tool.Code)
		}
		m.tools[tool.Code] = tool
		m.codes = append(m.codes, tool.Code)
	}
	sort.Strings(m.codes)

	return m, nil
}

// NewDefault creates a catalog holding the built-in inventory
func NewDefault() *Memory {
	m, err := NewMemory(DefaultTools()...)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in inventory: %v", err))
	}
	return m
}

// FindByCode returns the tool with the given code
func (m *Memory) FindByCode(code string) (Tool, bool) {
	tool, ok := m.tools[code]
	return tool, ok
}

// List returns all tools sorted by code
func (m *Memory) List() []Tool {
	tools := make([]Tool, 0, len(m.codes))
	for _, code := range m.codes {
		tools = append(tools, m.tools[code])
	}
	return tools
}

// Len returns the number of tools in the catalog
func (m *Memory) Len() int {
	return len(m.codes)
}

func validateTool(tool Tool) error {
	if strings.TrimSpace(tool.Code) == "" {
		return fmt.Errorf("tool code is required")
	}
	if tool.DailyCharge.IsNegative() {
		return fmt.Errorf("tool %s: daily charge must not be negative, got %s", tool.Code, tool.DailyCharge)
	}
	return nil
}
