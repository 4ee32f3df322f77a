// Package schema declares the JSON shapes the language model must answer in,
// renders them as prompt instructions and validates raw completions against
// them before decoding.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FieldType is the JSON primitive a field must carry.
type FieldType string

const (
	TypeString FieldType = "string"
	TypeArray  FieldType = "array"
)

// Field is one property of a schema. Array fields describe their element
// objects through Items. An Optional field may be absent but must have the
// declared type when present.
type Field struct {
	Name        string
	Type        FieldType
	Description string
	Items       []Field
	Optional    bool
}

// Schema is a JSON object made of Fields.
type Schema struct {
	Name   string
	Fields []Field
}

const formatInstructionsTemplate = `The output should be formatted as a JSON instance that conforms to the JSON schema below.

As an example, for the schema {"properties": {"foo": {"title": "Foo", "description": "a list of strings", "type": "array", "items": {"type": "string"}}}, "required": ["foo"]}
the object {"foo": ["bar", "baz"]} is a well-formatted instance of the schema. The object {"properties": {"foo": ["bar", "baz"]}} is not well-formatted.

Here is the output schema:
` + "```" + `
%s
` + "```"

// RecommendationList declares {"<key>": [{"name": ..., "description": ...}]}.
// The list may be omitted and then reads as empty; item fields are required.
func RecommendationList(key, listDescription, nameDescription, itemDescription string) *Schema {
	return &Schema{
		Name: key,
		Fields: []Field{
			{
				Name:        key,
				Type:        TypeArray,
				Description: listDescription,
				Optional:    true,
				Items: []Field{
					{Name: "name", Type: TypeString, Description: nameDescription},
					{Name: "description", Type: TypeString, Description: itemDescription},
				},
			},
		},
	}
}

// TripPlan declares the five free-text fields of a budget itinerary.
func TripPlan() *Schema {
	return &Schema{
		Name: "trip_plan",
		Fields: []Field{
			{Name: "travel_mode", Type: TypeString, Description: "Best travel option based on budget (Flight/Train/Bus)"},
			{Name: "hotel_type", Type: TypeString, Description: "Recommended hotel type (Budget/Mid-Range/Luxury)"},
			{Name: "location_details", Type: TypeString, Description: "Suggested locality to stay in for convenience and budget"},
			{Name: "food_recommendation", Type: TypeString, Description: "Best food options within the budget"},
			{Name: "activities_recommendation", Type: TypeString, Description: "Suggested activities and must-visit places"},
		},
	}
}

// JSONSchema returns the schema as a JSON Schema document.
func (s *Schema) JSONSchema() map[string]interface{} {
	return objectSchema(s.Fields)
}

func objectSchema(fields []Field) map[string]interface{} {
	properties := make(map[string]interface{}, len(fields))
	required := make([]string, 0, len(fields))
	for _, f := range fields {
		prop := map[string]interface{}{
			"type": string(f.Type),
		}
		if f.Description != "" {
			prop["description"] = f.Description
		}
		if f.Type == TypeArray {
			item := objectSchema(f.Items)
			item["type"] = "object"
			prop["items"] = item
		}
		properties[f.Name] = prop
		if !f.Optional {
			required = append(required, f.Name)
		}
	}
	doc := map[string]interface{}{
		"properties": properties,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	return doc
}

// FormatInstructions renders the instruction block appended to prompts so the
// model knows the exact shape to answer in.
func (s *Schema) FormatInstructions() string {
	raw, err := json.Marshal(s.JSONSchema())
	if err != nil {
		// Only strings and maps are marshalled, so this cannot fail.
		panic(fmt.Sprintf("schema %s: %v", s.Name, err))
	}
	return fmt.Sprintf(formatInstructionsTemplate, string(raw))
}

// FieldNames returns the top-level property names in declaration order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

func (s *Schema) String() string {
	return s.Name + "{" + strings.Join(s.FieldNames(), ", ") + "}"
}
