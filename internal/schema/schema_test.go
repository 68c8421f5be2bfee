package schema

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/taskmaster/internal/model"
)

func priority(p string) *model.Priority {
	pr := model.Priority(p)
	return &pr
}

func TestValidateTask_Valid(t *testing.T) {
	due := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	task, err := ValidateTask(model.TaskInput{
		Title:       "  Write report ",
		Description: "quarterly numbers",
		Priority:    priority("high"),
		CategoryID:  "c1",
		DueDate:     &due,
	})
	require.NoError(t, err)

	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, model.PriorityHigh, task.Priority)
	assert.Equal(t, "c1", task.CategoryID)
	assert.False(t, task.Completed)
	require.NotNil(t, task.DueDate)
	assert.True(t, due.Equal(*task.DueDate))
	assert.Empty(t, task.ID)
}

func TestValidateTask_Defaults(t *testing.T) {
	task, err := ValidateTask(model.TaskInput{Title: "Buy milk", CategoryID: "c1"})
	require.NoError(t, err)

	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.False(t, task.Completed)
	assert.Nil(t, task.DueDate)
}

func TestValidateTask_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  model.TaskInput
		field  string
		kind   error
		fields int
	}{
		{
			name:   "empty title",
			input:  model.TaskInput{Title: "", Priority: priority("medium"), CategoryID: "c1"},
			field:  "title",
			kind:   ErrRequiredField,
			fields: 1,
		},
		{
			name:   "whitespace title",
			input:  model.TaskInput{Title: "   ", CategoryID: "c1"},
			field:  "title",
			kind:   ErrRequiredField,
			fields: 1,
		},
		{
			name:   "unknown priority",
			input:  model.TaskInput{Title: "x", Priority: priority("urgent"), CategoryID: "c1"},
			field:  "priority",
			kind:   ErrInvalidEnum,
			fields: 1,
		},
		{
			name:   "priority is case sensitive",
			input:  model.TaskInput{Title: "x", Priority: priority("HIGH"), CategoryID: "c1"},
			field:  "priority",
			kind:   ErrInvalidEnum,
			fields: 1,
		},
		{
			name:   "empty priority is not defaulted",
			input:  model.TaskInput{Title: "x", Priority: priority(""), CategoryID: "c1"},
			field:  "priority",
			kind:   ErrInvalidEnum,
			fields: 1,
		},
		{
			name:   "missing category",
			input:  model.TaskInput{Title: "x"},
			field:  "categoryId",
			kind:   ErrRequiredField,
			fields: 1,
		},
		{
			name:   "everything wrong",
			input:  model.TaskInput{Priority: priority("nope")},
			field:  "title",
			kind:   ErrRequiredField,
			fields: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateTask(tt.input)
			require.Error(t, err)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "task", ve.Entity)
			assert.Len(t, ve.Fields, tt.fields)

			fe := ve.Field(tt.field)
			require.NotNil(t, fe, "expected error on %s, got %v", tt.field, err)
			assert.ErrorIs(t, fe, tt.kind)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestValidateTask_FieldOrderAndMessages(t *testing.T) {
	_, err := ValidateTask(model.TaskInput{Priority: priority("nope")})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Fields, 3)
	assert.Equal(t, "title", ve.Fields[0].Field)
	assert.Equal(t, "priority", ve.Fields[1].Field)
	assert.Equal(t, "categoryId", ve.Fields[2].Field)

	msgs := ve.FieldMessages()
	assert.Equal(t, "Title is required", msgs["title"])
	assert.Equal(t, "Please select a category", msgs["categoryId"])
	assert.Contains(t, err.Error(), "invalid task")
}

func TestValidateCategory(t *testing.T) {
	c, err := ValidateCategory(model.CategoryInput{Name: " Work ", Color: "#4A6FA5"})
	require.NoError(t, err)
	assert.Equal(t, model.Category{Name: "Work", Color: "#4A6FA5"}, c)

	// colors outside the palette are accepted
	_, err = ValidateCategory(model.CategoryInput{Name: "Home", Color: "teal"})
	assert.NoError(t, err)

	_, err = ValidateCategory(model.CategoryInput{Name: "  ", Color: ""})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "category", ve.Entity)
	require.Len(t, ve.Fields, 2)
	assert.Equal(t, "name", ve.Fields[0].Field)
	assert.Equal(t, "Category name is required", ve.Fields[0].Message)
	assert.Equal(t, "color", ve.Fields[1].Field)
	assert.ErrorIs(t, ve.Fields[1], ErrRequiredField)
}

func TestMissingProperty(t *testing.T) {
	assert.Equal(t, "title", missingProperty("missing properties: 'title', 'priority'"))
	assert.Equal(t, "", missingProperty("no quotes"))
}
