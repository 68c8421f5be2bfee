// Package schema validates task and category input against embedded JSON
// Schema documents and normalizes accepted records.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/existflow/taskmaster/internal/model"
)

//go:embed schemas/*.json
var documents embed.FS

const (
	taskSchemaURL     = "https://taskmaster.local/schemas/task.schema.json"
	categorySchemaURL = "https://taskmaster.local/schemas/category.schema.json"
)

// fieldSpec describes how a schema failure on a field is reported
type fieldSpec struct {
	name     string
	required bool
	messages map[error]string
}

var taskFields = []fieldSpec{
	{name: "title", required: true, messages: map[error]string{ErrRequiredField: "Title is required"}},
	{name: "description"},
	{name: "priority", messages: map[error]string{ErrInvalidEnum: "Priority must be one of low, medium, high"}},
	{name: "categoryId", required: true, messages: map[error]string{ErrRequiredField: "Please select a category"}},
	{name: "dueDate"},
	{name: "completed"},
}

var categoryFields = []fieldSpec{
	{name: "name", required: true, messages: map[error]string{ErrRequiredField: "Category name is required"}},
	{name: "color", required: true, messages: map[error]string{ErrRequiredField: "Please select a color"}},
}

// Schema is a compiled ruleset for one entity
type Schema struct {
	entity string
	fields []fieldSpec
	schema *jsonschema.Schema
}

var (
	taskSchema     = mustCompile("task", taskSchemaURL, "schemas/task.schema.json", taskFields)
	categorySchema = mustCompile("category", categorySchemaURL, "schemas/category.schema.json", categoryFields)
)

func mustCompile(entity, url, path string, fields []fieldSpec) *Schema {
	s, err := compile(entity, url, path, fields)
	if err != nil {
		panic(err)
	}
	return s
}

func compile(entity, url, path string, fields []fieldSpec) (*Schema, error) {
	data, err := documents.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s schema: %w", entity, err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("add %s schema: %w", entity, err)
	}

	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", entity, err)
	}

	return &Schema{entity: entity, fields: fields, schema: compiled}, nil
}

// ValidateTask checks a task input and returns the normalized record.
// The returned task has no ID or CreatedAt; stores assign those.
func ValidateTask(in model.TaskInput) (model.Task, error) {
	t := model.Task{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Priority:    model.PriorityMedium,
		CategoryID:  strings.TrimSpace(in.CategoryID),
		DueDate:     in.DueDate,
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}

	doc := map[string]any{
		"title":       t.Title,
		"description": t.Description,
		"priority":    string(t.Priority),
		"categoryId":  t.CategoryID,
		"completed":   t.Completed,
	}
	if t.DueDate != nil {
		doc["dueDate"] = t.DueDate.Format(time.RFC3339Nano)
	}

	if err := taskSchema.validate(doc); err != nil {
		return model.Task{}, err
	}
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t, nil
}

// ValidateCategory checks a category input and returns the normalized record
func ValidateCategory(in model.CategoryInput) (model.Category, error) {
	c := model.Category{
		Name:  strings.TrimSpace(in.Name),
		Color: strings.TrimSpace(in.Color),
	}
	doc := map[string]any{
		"name":  c.Name,
		"color": c.Color,
	}
	if err := categorySchema.validate(doc); err != nil {
		return model.Category{}, err
	}
	return c, nil
}

// validate runs the compiled schema and converts failures to a *ValidationError
func (s *Schema) validate(doc map[string]any) error {
	// round-trip through JSON so the validator sees plain decoded values
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s for validation: %w", s.entity, err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal %s for validation: %w", s.entity, err)
	}

	err = s.schema.Validate(v)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("validate %s: %w", s.entity, err)
	}

	var leaves []*jsonschema.ValidationError
	collectLeaves(ve, &leaves)

	byField := map[string]*FieldError{}
	for _, leaf := range leaves {
		fe := s.fieldError(leaf)
		if _, seen := byField[fe.Field]; !seen {
			byField[fe.Field] = fe
		}
	}

	out := NewValidationError(s.entity)
	for _, fe := range byField {
		out.Fields = append(out.Fields, fe)
	}
	sort.SliceStable(out.Fields, func(i, j int) bool {
		return s.order(out.Fields[i].Field) < s.order(out.Fields[j].Field)
	})
	return out
}

func collectLeaves(err *jsonschema.ValidationError, out *[]*jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*out = append(*out, err)
		return
	}
	for _, cause := range err.Causes {
		collectLeaves(cause, out)
	}
}

// fieldError classifies one leaf failure by the keyword that failed
func (s *Schema) fieldError(leaf *jsonschema.ValidationError) *FieldError {
	field := strings.TrimPrefix(leaf.InstanceLocation, "/")
	keyword := leaf.KeywordLocation
	if i := strings.LastIndex(keyword, "/"); i >= 0 {
		keyword = keyword[i+1:]
	}

	spec := s.spec(field)
	kind := ErrInvalidValue
	switch {
	case keyword == "enum":
		kind = ErrInvalidEnum
	case keyword == "required":
		kind = ErrRequiredField
		field = missingProperty(leaf.Message)
		spec = s.spec(field)
	case spec.required && (keyword == "minLength" || keyword == "type"):
		kind = ErrRequiredField
	}

	msg := leaf.Message
	if m, ok := spec.messages[kind]; ok {
		msg = m
	}
	return &FieldError{Field: field, Kind: kind, Message: msg}
}

func (s *Schema) spec(field string) fieldSpec {
	for _, f := range s.fields {
		if f.name == field {
			return f
		}
	}
	return fieldSpec{name: field}
}

func (s *Schema) order(field string) int {
	for i, f := range s.fields {
		if f.name == field {
			return i
		}
	}
	return len(s.fields)
}

// missingProperty pulls the first name out of "missing properties: 'title', ..."
func missingProperty(msg string) string {
	start := strings.IndexByte(msg, '\'')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(msg[start+1:], '\'')
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
