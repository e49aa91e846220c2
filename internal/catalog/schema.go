package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

const recordSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "company", "location", "type", "duration", "jpLevel", "updatedAt"],
    "properties": {
      "id":            {"type": "string"},
      "title":         {"type": "string"},
      "titleJP":       {"type": "string"},
      "titleEN":       {"type": "string"},
      "company":       {"type": "string"},
      "companyJP":     {"type": "string"},
      "companyEN":     {"type": "string"},
      "location":      {"type": "string"},
      "locationUA":    {"type": "string"},
      "locationJP":    {"type": "string"},
      "locationEN":    {"type": "string"},
      "type":          {"type": "string"},
      "duration":      {"type": "string"},
      "jpLevel":       {"type": "string"},
      "salaryUA":      {"type": "string"},
      "salaryJP":      {"type": "string"},
      "salaryEN":      {"type": "string"},
      "tagsUA":        {"type": "array", "items": {"type": "string"}},
      "tagsJP":        {"type": "array", "items": {"type": "string"}},
      "tagsEN":        {"type": "array", "items": {"type": "string"}},
      "updatedAt":     {"type": "string"},
      "descriptionUA": {"type": "string"},
      "descriptionJP": {"type": "string"},
      "descriptionEN": {"type": "string"},
      "applyNoteUA":   {"type": "string"},
      "applyNoteJP":   {"type": "string"},
      "applyNoteEN":   {"type": "string"},
      "contactEmail":  {"type": "string"}
    },
    "additionalProperties": false
  }
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(recordSchema))
	})
	return schema, schemaErr
}

// CheckSchema validates raw records structurally before they are decoded into jobs:
// required keys, string-typed fields and no unknown keys.
func CheckSchema(records []map[string]any) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("catalog: compile schema: %w", err)
	}
	if records == nil {
		records = []map[string]any{}
	}
	result, err := s.Validate(gojsonschema.NewGoLoader(records))
	if err != nil {
		return fmt.Errorf("catalog: schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{}
	for _, re := range result.Errors() {
		index, field := splitSchemaField(re.Field())
		id := ""
		if index >= 0 && index < len(records) {
			id, _ = records[index]["id"].(string)
			id = strings.TrimSpace(id)
		}
		verr.add(index, id, field, re.Description())
	}
	return verr
}

// splitSchemaField turns gojsonschema's "3.titleJP" into (3, "titleJP").
func splitSchemaField(field string) (int, string) {
	head, rest, _ := strings.Cut(field, ".")
	index, err := strconv.Atoi(head)
	if err != nil {
		return -1, field
	}
	return index, rest
}
