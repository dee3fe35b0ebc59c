package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/username/tool-rental/internal/api"
	"github.com/username/tool-rental/internal/calendar"
	"github.com/username/tool-rental/internal/catalog"
	"github.com/username/tool-rental/internal/config"
	"github.com/username/tool-rental/internal/rental"
	"github.com/username/tool-rental/pkg/dateutil"
)

const inventoryYAML = `tools:
  - code: LADW
    type: Ladder
    brand: Little Giant
    daily_charge: 2.49
    weekday_charge: true
    weekend_charge: true
  - code: SNDR
    type: Sander
    brand: Makita
    daily_charge: 0.99
    weekday_charge: true
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes the CLI with a config file that sets the log level to error
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runWithConfig(t, "", args...)
}

func runWithConfig(t *testing.T, cfgYAML string, args ...string) (string, error) {
	t.Helper()
	cfgPath := writeFile(t, "config.yaml", cfgYAML+"log:\n  level: error\n")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestCheckoutCommand_Text(t *testing.T) {
	out, err := run(t, "checkout", "--tool", "LADW", "--days", "3", "--discount", "10", "--date", "07/02/20")
	require.NoError(t, err)

	want := `Tool code: LADW
Tool type: Ladder
Tool brand: Werner
Rental days: 3
Checkout date: 07/02/20
Due date: 07/05/20
Daily rental charge: $1.99
Charge days: 2
Pre-discount charge: $3.98
Discount percent: 10%
Discount amount: $0.40
Final charge: $3.58
`
	assert.Equal(t, want, out)
}

func TestCheckoutCommand_JSON(t *testing.T) {
	out, err := run(t, "checkout", "--tool", "CHNS", "--days", "5", "--discount", "25", "--date", "07/02/15", "-o", "json")
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "CHNS", got["tool_code"])
	assert.Equal(t, float64(3), got["charge_days"])
	assert.Equal(t, "4.47", got["pre_discount_charge"])
	assert.Equal(t, "1.12", got["discount_amount"])
	assert.Equal(t, "3.35", got["final_charge"])
}

func TestCheckoutCommand_Breakdown(t *testing.T) {
	out, err := run(t, "checkout", "--tool", "JAKR", "--days", "4", "--discount", "50", "--date", "07/02/20", "--breakdown")
	require.NoError(t, err)

	assert.Contains(t, out, "Final charge: $2.99\n")
	assert.Contains(t, out, "\nCharge breakdown:\n")
	assert.Contains(t, out, "  07/02/20 Thu  weekday  charged\n")
	assert.Contains(t, out, "  07/04/20 Sat  holiday  free     Independence Day\n")
	assert.Contains(t, out, "  07/05/20 Sun  weekend  free\n")
	assert.Contains(t, out, "Chargeable: 2, weekends: 1, holidays: 1\n")
}

func TestCheckoutCommand_BreakdownUsesConfiguredObservance(t *testing.T) {
	out, err := runWithConfig(t, "calendar:\n  observance: nearest-weekday\n",
		"checkout", "--tool", "LADW", "--days", "3", "--discount", "10", "--date", "07/02/20", "--breakdown")
	require.NoError(t, err)

	assert.Contains(t, out, "Charge days: 1\n")
	assert.Contains(t, out, "  07/03/20 Fri  holiday  free     Independence Day (observed)\n")
	assert.Contains(t, out, "  07/04/20 Sat  weekend  free\n")
	assert.Contains(t, out, "Chargeable: 1, weekends: 1, holidays: 1\n")
}

func TestCheckoutCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"Discount over 100", []string{"--tool", "JAKR", "--days", "5", "--discount", "101", "--date", "09/03/15"}, "discount percent must be between 0 and 100 inclusive"},
		{"Unknown tool", []string{"--tool", "XXXX", "--days", "1", "--date", "09/03/15"}, "tool XXXX does not exist"},
		{"Bad date", []string{"--tool", "JAKR", "--days", "1", "--date", "9-3-15"}, "invalid checkout date"},
		{"Missing tool", []string{"--days", "1", "--date", "09/03/15"}, `required flag(s) "tool" not set`},
		{"Unknown output", []string{"--tool", "JAKR", "--days", "1", "--date", "09/03/15", "-o", "xml"}, "unknown output format"},
		{"Breakdown with JSON", []string{"--tool", "JAKR", "--days", "1", "--date", "09/03/15", "-o", "json", "--breakdown"}, "--breakdown is only supported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"checkout"}, tt.args...)...)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestCheckoutCommand_Remote(t *testing.T) {
	calc := rental.NewCalculator(
		catalog.NewDefault(),
		calendar.NewUSCalendar(calendar.ObserveActualDate),
		dateutil.DefaultCenturyPivot,
		zap.NewNop(),
	)
	srv := httptest.NewServer(api.NewRouter(calc, zap.NewNop()))
	defer srv.Close()

	out, err := run(t, "checkout", "--tool", "JAKD", "--days", "6", "--date", "09/03/15", "--remote", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Charge days: 3\n")
	assert.Contains(t, out, "Final charge: $8.97\n")

	_, err = run(t, "checkout", "--tool", "JAKR", "--days", "0", "--date", "09/03/15", "--remote", srv.URL)
	assert.ErrorContains(t, err, "rental days must be 1 or greater")
	assert.ErrorIs(t, err, rental.ErrInvalidArgument)
}

func TestToolsCommand(t *testing.T) {
	out, err := run(t, "tools")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "CODE"))
	assert.True(t, strings.HasPrefix(lines[1], "CHNS"))
	assert.Contains(t, lines[1], "$1.49")
	assert.True(t, strings.HasPrefix(lines[4], "LADW"))
}

func TestBuildCatalog(t *testing.T) {
	inventory := writeFile(t, "tools.yaml", inventoryYAML)

	t.Run("Builtin", func(t *testing.T) {
		cat, err := buildCatalog(context.Background(), config.Default())
		require.NoError(t, err)
		assert.Len(t, cat.List(), 4)
	})

	t.Run("File", func(t *testing.T) {
		cfg := config.Default()
		cfg.Catalog.Source = "file"
		cfg.Catalog.File = inventory

		cat, err := buildCatalog(context.Background(), cfg)
		require.NoError(t, err)

		tool, ok := cat.FindByCode("LADW")
		require.True(t, ok)
		assert.Equal(t, "Little Giant", tool.Brand)
		_, ok = cat.FindByCode("JAKR")
		assert.False(t, ok)
	})

	t.Run("File with builtin fallback", func(t *testing.T) {
		cfg := config.Default()
		cfg.Catalog.Source = "file"
		cfg.Catalog.File = inventory
		cfg.Catalog.FallbackBuiltin = true

		cat, err := buildCatalog(context.Background(), cfg)
		require.NoError(t, err)

		tool, ok := cat.FindByCode("LADW")
		require.True(t, ok)
		assert.Equal(t, "2.49", tool.DailyCharge.StringFixed(2))
		_, ok = cat.FindByCode("JAKR")
		assert.True(t, ok)
		assert.Len(t, cat.List(), 5)
	})

	t.Run("Missing file", func(t *testing.T) {
		cfg := config.Default()
		cfg.Catalog.Source = "file"
		cfg.Catalog.File = filepath.Join(t.TempDir(), "absent.yaml")

		_, err := buildCatalog(context.Background(), cfg)
		assert.ErrorContains(t, err, "failed to load tool inventory")
	})

	t.Run("Unknown source", func(t *testing.T) {
		cfg := config.Default()
		cfg.Catalog.Source = "ldap"

		_, err := buildCatalog(context.Background(), cfg)
		assert.ErrorContains(t, err, "unknown catalog source")
	})
}

func TestBuildCalculator_Observance(t *testing.T) {
	cfg := config.Default()
	cfg.Calendar.Observance = "nearest-weekday"

	calc, err := buildCalculator(context.Background(), cfg)
	require.NoError(t, err)

	agreement, err := calc.Checkout("LADW", 3, 10, "07/02/20")
	require.NoError(t, err)
	assert.Equal(t, 1, agreement.ChargeDays)
	assert.Equal(t, "1.79", agreement.FinalCharge.StringFixed(2))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("loud"))
}
