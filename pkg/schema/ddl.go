package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// Columns returns names of the columns of a model in field order.
// Bulk inserts use them.
func Columns(model any) []string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	var res []string
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("db"); tag != "" {
			res = append(res, tag)
		}
	}
	return res
}

func runIndex(table string) string {
	return fmt.Sprintf(
		"CREATE INDEX IF NOT EXISTS idx_%s_run_id ON %s(run_id);",
		table, table,
	)
}

// Run DDL methods
func (r Run) TableDDL() string {
	return generateDDL(r, r.TableName())
}

func (r Run) IndexDDL() []string {
	return []string{}
}

func (r Run) TableName() string {
	return "runs"
}

// CellValue DDL methods
func (c CellValue) TableDDL() string {
	return generateDDL(c, c.TableName())
}

func (c CellValue) IndexDDL() []string {
	return []string{runIndex(c.TableName())}
}

func (c CellValue) TableName() string {
	return "cell_values"
}

// Region DDL methods
func (r Region) TableDDL() string {
	return generateDDL(r, r.TableName())
}

func (r Region) IndexDDL() []string {
	return []string{runIndex(r.TableName())}
}

func (r Region) TableName() string {
	return "regions"
}

// RegionValue DDL methods
func (r RegionValue) TableDDL() string {
	return generateDDL(r, r.TableName())
}

func (r RegionValue) IndexDDL() []string {
	return []string{runIndex(r.TableName())}
}

func (r RegionValue) TableName() string {
	return "region_values"
}

// RegionGeometry DDL methods
func (r RegionGeometry) TableDDL() string {
	return generateDDL(r, r.TableName())
}

func (r RegionGeometry) IndexDDL() []string {
	return []string{runIndex(r.TableName())}
}

func (r RegionGeometry) TableName() string {
	return "region_geometries"
}

// Hex DDL methods
func (h Hex) TableDDL() string {
	return generateDDL(h, h.TableName())
}

func (h Hex) IndexDDL() []string {
	return []string{runIndex(h.TableName())}
}

func (h Hex) TableName() string {
	return "hexes"
}

// HexValue DDL methods
func (h HexValue) TableDDL() string {
	return generateDDL(h, h.TableName())
}

func (h HexValue) IndexDDL() []string {
	return []string{runIndex(h.TableName())}
}

func (h HexValue) TableName() string {
	return "hex_values"
}
