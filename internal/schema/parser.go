package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ValidationError reports a completion that does not conform to its schema:
// invalid JSON, a missing required field or a field of the wrong type.
type ValidationError struct {
	Schema string
	Path   string
	Reason string
	Raw    string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("model output does not match %s: %s", e.Schema, e.Reason)
	}
	return fmt.Sprintf("model output does not match %s: %s: %s", e.Schema, e.Path, e.Reason)
}

// Parse validates text against the schema and decodes it into out. On any
// failure out is left untouched and a *ValidationError is returned.
func (s *Schema) Parse(text string, out interface{}) error {
	payload := ExtractJSON(text)
	if !gjson.Valid(payload) {
		return s.fail("", "output is not valid JSON", text)
	}

	root := gjson.Parse(payload)
	if !root.IsObject() {
		return s.fail("", "output is not a JSON object", text)
	}
	if err := s.check(root, s.Fields, ""); err != nil {
		err.Raw = text
		return err
	}

	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return s.fail("", err.Error(), text)
	}
	return nil
}

func (s *Schema) check(obj gjson.Result, fields []Field, prefix string) *ValidationError {
	values := obj.Map()
	for _, f := range fields {
		path := joinPath(prefix, f.Name)
		v, ok := values[f.Name]
		if !ok {
			if f.Optional {
				continue
			}
			return s.fail(path, "field required", "")
		}
		switch f.Type {
		case TypeString:
			if v.Type != gjson.String {
				return s.fail(path, "expected string, got "+typeName(v), "")
			}
		case TypeArray:
			if !v.IsArray() {
				return s.fail(path, "expected array, got "+typeName(v), "")
			}
			for i, elem := range v.Array() {
				elemPath := fmt.Sprintf("%s[%d]", path, i)
				if !elem.IsObject() {
					return s.fail(elemPath, "expected object, got "+typeName(elem), "")
				}
				if err := s.check(elem, f.Items, elemPath); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *Schema) fail(path, reason, raw string) *ValidationError {
	return &ValidationError{Schema: s.Name, Path: path, Reason: reason, Raw: raw}
}

// ExtractJSON pulls the JSON object out of a completion, dropping markdown
// code fences and any prose around the outermost braces. A bare array is
// returned as is so it fails the object check.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)
	if start := strings.Index(text, "```"); start >= 0 {
		body := text[start+3:]
		// Skip the info string, e.g. ```json
		if nl := strings.IndexByte(body, '\n'); nl >= 0 && !strings.ContainsAny(body[:nl], "{`") {
			body = body[nl+1:]
		}
		if end := strings.Index(body, "```"); end >= 0 {
			body = body[:end]
		}
		text = strings.TrimSpace(body)
	}
	if strings.HasPrefix(text, "[") {
		return text
	}
	open := strings.IndexByte(text, '{')
	closing := strings.LastIndexByte(text, '}')
	if open >= 0 && closing > open {
		return text[open : closing+1]
	}
	return text
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func typeName(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return "null"
	case gjson.False, gjson.True:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	}
	if v.IsArray() {
		return "array"
	}
	return "object"
}
