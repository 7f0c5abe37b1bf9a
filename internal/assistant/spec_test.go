package assistant

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepare_Normalization(t *testing.T) {
	reg := NewRegistry()
	spec, err := reg.Get("contract_analysis")
	require.NoError(t, err)

	fields, err := spec.Prepare(Fields{
		"contract_text": "Clause.",
		"analysis_type": "",
		"focus_areas":   []any{"Payment Terms", "Confidentiality"},
		"unknown_key":   "dropped",
	})
	require.NoError(t, err)

	assert.Equal(t, "General Review", fields.Text("analysis_type"))
	assert.Equal(t, "Employment", fields.Text("contract_type"))
	assert.Equal(t, []string{"Payment Terms", "Confidentiality"}, fields.List("focus_areas"))
	assert.NotContains(t, fields, "unknown_key")
}

func TestPrepare_CheckboxDefault(t *testing.T) {
	reg := NewRegistry()
	spec, err := reg.Get("memo_generator")
	require.NoError(t, err)

	fields, err := spec.Prepare(Fields{
		"memo_subject":   "s",
		"facts":          "f",
		"legal_question": "q",
	})
	require.NoError(t, err)
	assert.True(t, fields.Bool("include_recommendations", false))

	fields, err = spec.Prepare(Fields{
		"memo_subject":            "s",
		"facts":                   "f",
		"legal_question":          "q",
		"include_recommendations": false,
	})
	require.NoError(t, err)
	assert.False(t, fields.Bool("include_recommendations", true))
}

func TestPrepare_RequiredMissing(t *testing.T) {
	reg := NewRegistry()
	spec, err := reg.Get("memo_generator")
	require.NoError(t, err)

	_, err = spec.Prepare(Fields{
		"memo_subject":   "",
		"facts":          "Tenant withheld rent.",
		"legal_question": "Remedies?",
	})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "memo_generator", ve.FunctionID)
	assert.Equal(t, []string{"memo_subject"}, ve.Missing)
	assert.Equal(t, "Please fill in all required fields (Subject, Facts, and Legal Questions).", ve.Message)
}

func TestPrepare_RequiredWhitespaceOnly(t *testing.T) {
	reg := NewRegistry()
	spec, err := reg.Get("contract_analysis")
	require.NoError(t, err)

	_, err = spec.Prepare(Fields{"contract_text": "   \n\t"})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"contract_text"}, ve.Missing)
	assert.Equal(t, "Please provide contract text or upload a contract file to analyze.", ve.Message)
}

func TestPrepare_TypeErrors(t *testing.T) {
	reg := NewRegistry()
	spec, err := reg.Get("contract_analysis")
	require.NoError(t, err)

	_, err = spec.Prepare(Fields{"contract_text": 42})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, `field "contract_text" must be a string`)

	_, err = spec.Prepare(Fields{"contract_text": "x", "focus_areas": "not a list"})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, `field "focus_areas" must be a list of strings`)

	memo, err := reg.Get("memo_generator")
	require.NoError(t, err)
	_, err = memo.Prepare(Fields{
		"memo_subject":            "s",
		"facts":                   "f",
		"legal_question":          "q",
		"include_recommendations": "yes",
	})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, `field "include_recommendations" must be a boolean`)
}

func TestPrepare_NilValueTreatedAsAbsent(t *testing.T) {
	reg := NewRegistry()
	spec, err := reg.Get("case_research")
	require.NoError(t, err)

	fields, err := spec.Prepare(Fields{
		"legal_issue":         "Easement dispute.",
		"jurisdiction_filter": nil,
		"case_type":           nil,
	})
	require.NoError(t, err)
	assert.Nil(t, fields.List("jurisdiction_filter"))
	assert.Equal(t, "All Types", fields.Text("case_type"))
}

func TestRegistry_Catalogue(t *testing.T) {
	reg := NewRegistry()

	var ids []string
	for _, s := range reg.List() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{
		"contract_analysis",
		"document_drafting",
		"case_research",
		"memo_generator",
		"compliance_check",
	}, ids)

	for _, s := range reg.List() {
		assert.NotEmpty(t, s.Title, s.ID)
		assert.NotEmpty(t, s.Fields, s.ID)
		assert.NotEmpty(t, s.RequiredMessage, s.ID)
		assert.NotNil(t, s.Compose, s.ID)
	}
}

func TestRegistry_UnknownFunction(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Get("tax_wizard")
	var uf *UnknownFunctionError
	require.ErrorAs(t, err, &uf)
	assert.Equal(t, "tax_wizard", uf.ID)

	_, err = reg.Compose("tax_wizard", Fields{})
	assert.True(t, errors.As(err, &uf))
}
