package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// DefaultTable is the Postgres table holding the tool inventory
const DefaultTable = "tools"

// OpenPostgres opens and pings a Postgres connection
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return db, nil
}

// LoadPostgres reads the whole inventory table once into an immutable catalog
func LoadPostgres(ctx context.Context, db *sql.DB, table string, logger *zap.Logger) (*Memory, error) {
	if table == "" {
		table = DefaultTable
	}

	query := fmt.Sprintf(`SELECT code, tool_type, brand, daily_charge, weekday_charge, weekend_charge, holiday_charge FROM %s ORDER BY code`,
		pq.QuoteIdentifier(table))

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tools: %w", err)
	}
	defer rows.Close()

	var tools []Tool
	for rows.Next() {
		var t Tool
		if err := rows.Scan(&t.Code, &t.Type, &t.Brand, &t.DailyCharge, &t.ChargesOnWeekday, &t.ChargesOnWeekend, &t.ChargesOnHoliday); err != nil {
			return nil, fmt.Errorf("failed to scan tool: %w", err)
		}
		tools = append(tools, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tools: %w", err)
	}

	m, err := NewMemory(tools...)
	if err != nil {
		return nil, fmt.Errorf("invalid tools table: %w", err)
	}

	logger.Info("Inventory loaded from postgres",
		zap.String("table", table),
		zap.Int("tools", m.Len()))

	return m, nil
}
