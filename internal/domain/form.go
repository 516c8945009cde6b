package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// FieldType is the input kind of a form field.
type FieldType string

const (
	FieldTextbox      FieldType = "textbox"
	FieldDropdown     FieldType = "dropdown"
	FieldCheckbox     FieldType = "checkbox"
	FieldCheckboxList FieldType = "checkbox_list"
	FieldYesNo        FieldType = "yes_no"
	FieldFileUpload   FieldType = "file_upload"
	FieldAddress      FieldType = "address"
)

// FormField is a single typed question.
type FormField struct {
	ID         uuid.UUID `json:"id"`
	Label      string    `json:"label"`
	Type       FieldType `json:"field_type"`
	Required   bool      `json:"required"`
	Options    []string  `json:"options,omitempty"`
	OrderIndex int       `json:"order_index"`
}

// Form is an intake form attached to appointment types. Its definition is
// owned by the forms subsystem; the scheduling core only reads it.
type Form struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	FormRequired bool        `json:"form_required"`
	Fields       []FormField `json:"fields"`
}

// FormAnswers are responses to one form keyed by field id.
type FormAnswers map[uuid.UUID]interface{}

// FormResponses are the answers captured at job creation keyed by form id.
type FormResponses map[uuid.UUID]FormAnswers

// Value stores responses as JSONB.
func (r FormResponses) Value() (driver.Value, error) {
	if r == nil {
		return "{}", nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan reads responses from a JSONB column.
func (r *FormResponses) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*r = FormResponses{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into FormResponses", value)
	}
	return json.Unmarshal(data, r)
}

// IsAnswered reports whether a response value counts as filled in.
// nil, blank strings, false, empty lists and empty objects do not.
func IsAnswered(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case bool:
		return v
	case []interface{}:
		return len(v) > 0
	case []string:
		return len(v) > 0
	case map[string]interface{}:
		return len(v) > 0
	default:
		return true
	}
}

// MissingRequiredFields returns required fields left unanswered.
// Forms not marked FormRequired never block.
func (f *Form) MissingRequiredFields(answers FormAnswers) []FormField {
	if !f.FormRequired {
		return nil
	}

	var missing []FormField
	for _, field := range f.Fields {
		if !field.Required {
			continue
		}
		if !IsAnswered(answers[field.ID]) {
			missing = append(missing, field)
		}
	}
	return missing
}

// SortFields orders fields by OrderIndex.
func (f *Form) SortFields() {
	sort.SliceStable(f.Fields, func(i, j int) bool {
		return f.Fields[i].OrderIndex < f.Fields[j].OrderIndex
	})
}
