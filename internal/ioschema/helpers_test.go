package ioschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFormatCollationSQL verifies SQL formatting.
func TestFormatCollationSQL(t *testing.T) {
	template := `ALTER TABLE %s ALTER COLUMN %s ` +
		`TYPE VARCHAR(255) COLLATE "C"`

	tests := []struct {
		name     string
		table    string
		column   string
		expected string
	}{
		{
			name:   "regions name",
			table:  "regions",
			column: "name",
			expected: `ALTER TABLE regions ALTER COLUMN name ` +
				`TYPE VARCHAR(255) COLLATE "C"`,
		},
		{
			name:   "region_values parent",
			table:  "region_values",
			column: "parent",
			expected: `ALTER TABLE region_values ALTER COLUMN parent ` +
				`TYPE VARCHAR(255) COLLATE "C"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatCollationSQL(template, tt.table, tt.column)
			assert.Equal(t, tt.expected, result)
		})
	}
}
