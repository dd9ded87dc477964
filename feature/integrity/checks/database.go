package checks

import (
	"fmt"
	"reflect"
	"strings"

	"twii-miner/core/database"
	"twii-miner/feature/export"

	"gorm.io/gorm"
)

// SchemaReport is the result of comparing the export table with the model.
type SchemaReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Errors         []string `json:"errors"`
}

// CheckDatabase verifies the export table against export.TravelSkill.
// Only the type family is compared: strings need a char or text column,
// integers an int column.
func CheckDatabase(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Table:          export.TableName,
		Matched:        true,
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Errors:         []string{},
	}

	actual, err := database.GetTableColumns(db, export.TableName)
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
		report.Matched = false
		return report, nil
	}
	byName := make(map[string]database.ColumnInfo, len(actual))
	for _, c := range actual {
		byName[c.Field] = c
	}

	model := reflect.TypeOf(export.TravelSkill{})
	for i := 0; i < model.NumField(); i++ {
		field := model.Field(i)
		col := parseGormColumn(field.Tag.Get("gorm"))
		if col == "" {
			continue
		}

		have, ok := byName[col]
		if !ok {
			report.MissingColumns = append(report.MissingColumns, col)
			report.Matched = false
			continue
		}

		if !typeMatches(field.Type.Kind(), have.Type) {
			report.TypeMismatches = append(report.TypeMismatches,
				fmt.Sprintf("%s: expected %s column, got %s", col, field.Type.Kind(), have.Type))
			report.Matched = false
		}
	}
	return report, nil
}

func typeMatches(kind reflect.Kind, sqlType string) bool {
	switch kind {
	case reflect.String:
		return strings.Contains(sqlType, "char") || strings.Contains(sqlType, "text")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strings.Contains(sqlType, "int")
	}
	return true
}

func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}
