package catalog

import (
	"strconv"
	"strings"

	"questdeck/internal/model"
)

// Row is one record from an imported tabular source (CSV, sheet export).
// Column names are matched case-insensitively, so TYPE_ID and type_id both
// resolve to the same field.
type Row map[string]string

// NewRow builds a Row with lower-cased keys and trimmed values.
func NewRow(raw map[string]string) Row {
	row := make(Row, len(raw))
	for k, v := range raw {
		row[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return row
}

func (r Row) str(column string) string {
	return r[strings.ToLower(column)]
}

func (r Row) num(column string) int {
	n, err := strconv.Atoi(r.str(column))
	if err != nil {
		return 0
	}
	return n
}

// ParseTypes converts raw rows into catalog entries. Rows without a type_id
// are skipped.
func ParseTypes(rows []Row) []model.QuestionType {
	types := make([]model.QuestionType, 0, len(rows))
	for _, row := range rows {
		id := row.str("type_id")
		if id == "" {
			continue
		}
		types = append(types, model.QuestionType{
			TypeID:      id,
			Name:        row.str("name"),
			Priority:    row.num("priority"),
			Category:    model.Category(strings.ToLower(row.str("category"))),
			Description: row.str("description"),
		})
	}
	return types
}

// ParseRequirements converts raw rows into rule entries. Y/N-style values are
// normalized to booleans; numeric values to numbers.
func ParseRequirements(rows []Row) []model.Requirement {
	reqs := make([]model.Requirement, 0, len(rows))
	for _, row := range rows {
		id := row.str("type_id")
		feature := row.str("feature")
		if id == "" || feature == "" {
			continue
		}
		reqs = append(reqs, model.Requirement{
			TypeID:   id,
			Feature:  feature,
			Operator: row.str("operator"),
			Value:    CoerceValue(row.str("value")),
		})
	}
	return reqs
}

// ParseFeatures converts one raw row into an attribute record, dropping the
// text_id key column itself.
func ParseFeatures(row Row) (string, model.AttributeRecord) {
	textID := row.str("text_id")
	record := make(model.AttributeRecord, len(row))
	for k, v := range row {
		if k == "text_id" || v == "" {
			continue
		}
		record[k] = CoerceValue(v)
	}
	return textID, record
}

// CoerceValue maps a cell string onto a typed scalar: Y/N-style booleans,
// then numbers, else the string itself.
func CoerceValue(cell string) interface{} {
	s := strings.TrimSpace(cell)
	switch strings.ToLower(s) {
	case "y", "yes", "true":
		return true
	case "n", "no", "false":
		return false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
