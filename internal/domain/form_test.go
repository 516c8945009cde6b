package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAnswered(t *testing.T) {
	assert.False(t, IsAnswered(nil))
	assert.False(t, IsAnswered("   "))
	assert.False(t, IsAnswered(false))
	assert.False(t, IsAnswered([]interface{}{}))
	assert.False(t, IsAnswered(map[string]interface{}{}))

	assert.True(t, IsAnswered("yes"))
	assert.True(t, IsAnswered(true))
	assert.True(t, IsAnswered([]interface{}{"a"}))
	assert.True(t, IsAnswered(float64(0)))
}

func TestForm_MissingRequiredFields(t *testing.T) {
	name, notes := uuid.New(), uuid.New()
	form := &Form{
		FormRequired: true,
		Fields: []FormField{
			{ID: name, Label: "Gate code", Type: FieldTextbox, Required: true},
			{ID: notes, Label: "Notes", Type: FieldTextbox},
		},
	}

	missing := form.MissingRequiredFields(FormAnswers{notes: "ring twice"})
	require.Len(t, missing, 1)
	assert.Equal(t, name, missing[0].ID)

	assert.Empty(t, form.MissingRequiredFields(FormAnswers{name: "1234"}))

	form.FormRequired = false
	assert.Empty(t, form.MissingRequiredFields(nil))
}

func TestFormResponses_ScanValue(t *testing.T) {
	formID, fieldID := uuid.New(), uuid.New()
	responses := FormResponses{formID: {fieldID: "blue"}}

	v, err := responses.Value()
	require.NoError(t, err)

	var scanned FormResponses
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, "blue", scanned[formID][fieldID])

	var decoded FormResponses
	require.NoError(t, json.Unmarshal([]byte(`{"`+formID.String()+`":{"`+fieldID.String()+`":["a","b"]}}`), &decoded))
	assert.Equal(t, []interface{}{"a", "b"}, decoded[formID][fieldID])
}

func TestForm_SortFields(t *testing.T) {
	form := &Form{Fields: []FormField{{Label: "b", OrderIndex: 2}, {Label: "a", OrderIndex: 1}}}
	form.SortFields()
	assert.Equal(t, "a", form.Fields[0].Label)
}
