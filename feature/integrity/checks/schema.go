package checks

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"movies-app/core/database"
	"movies-app/feature/catalog/models"

	"gorm.io/gorm"
)

// SchemaReport strictly types the result of a schema check.
type SchemaReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	PrimaryKey     []string `json:"primary_key"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies the database schema using the catalog GORM models as
// the source of truth. The join table must be keyed by (movie_id, artist_id).
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Driver:  db.Dialector.Name(),
		Tables:  make(map[string]TableReport),
		Matched: true,
		Errors:  []string{},
	}

	for _, model := range models.All() {
		typ := reflect.TypeOf(model)
		if typ.Kind() == reflect.Ptr {
			typ = typ.Elem()
		}

		tabler, ok := reflect.New(typ).Interface().(interface{ TableName() string })
		if !ok {
			return nil, fmt.Errorf("model %s does not implement TableName", typ.Name())
		}
		tableName := tabler.TableName()

		actualCols, err := database.GetTableColumns(db, tableName)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", tableName, err))
			report.Matched = false
			continue
		}

		tbl := checkTable(typ, actualCols)
		if tbl.Status != "ok" {
			report.Matched = false
		}
		report.Tables[tableName] = tbl
	}

	return report, nil
}

func checkTable(typ reflect.Type, actualCols []database.ColumnInfo) TableReport {
	tbl := TableReport{
		MissingColumns: []string{},
		TypeMismatches: []string{},
		PrimaryKey:     []string{},
		Status:         "ok",
	}

	actualMap := make(map[string]database.ColumnInfo, len(actualCols))
	for _, col := range actualCols {
		actualMap[col.Field] = col
		if col.Key == "PRI" {
			tbl.PrimaryKey = append(tbl.PrimaryKey, col.Field)
		}
	}

	var expectedPK []string
	for i := 0; i < typ.NumField(); i++ {
		gormTag := typ.Field(i).Tag.Get("gorm")

		colName := parseGormColumn(gormTag)
		if colName == "" {
			continue // relation field
		}
		if hasGormFlag(gormTag, "primaryKey") {
			expectedPK = append(expectedPK, colName)
		}

		actCol, exists := actualMap[colName]
		if !exists {
			tbl.MissingColumns = append(tbl.MissingColumns, colName)
			tbl.Status = "error"
			continue
		}

		// Soft check, only when the tag pins a type.
		if expType := strings.ToLower(parseGormType(gormTag)); expType != "" {
			if !strings.Contains(actCol.Type, expType) {
				tbl.TypeMismatches = append(tbl.TypeMismatches, fmt.Sprintf("%s: expected %s, got %s", colName, expType, actCol.Type))
				tbl.Status = "error"
			}
		}
	}

	if len(tbl.MissingColumns) == 0 && !sameColumns(expectedPK, tbl.PrimaryKey) {
		tbl.TypeMismatches = append(tbl.TypeMismatches,
			fmt.Sprintf("primary key: expected (%s), got (%s)", strings.Join(expectedPK, ", "), strings.Join(tbl.PrimaryKey, ", ")))
		tbl.Status = "error"
	}

	return tbl
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]string{}, a...)
	y := append([]string{}, b...)
	sort.Strings(x)
	sort.Strings(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Helpers to parse simple GORM tags
func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}

func parseGormType(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "type:") {
			return strings.TrimPrefix(p, "type:")
		}
	}
	return ""
}

func hasGormFlag(tag, flag string) bool {
	for _, p := range strings.Split(tag, ";") {
		if strings.EqualFold(p, flag) {
			return true
		}
	}
	return false
}
