package dialog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Name  string `json:"name" validate:"required"`
	Price string `json:"price" validate:"decimal,positive"`
	Link  string `json:"link" validate:"omitempty,url"`
}

var sampleMessages = Messages{
	"name.required":  "name is required",
	"price.decimal":  "price must be a number",
	"price.positive": "price must be greater than 0",
}

func TestValidateReportsFirstViolationOnly(t *testing.T) {
	err := Validate(sampleForm{Name: "", Price: "-1", Link: "nope"}, sampleMessages)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, "name is required", verr.Message)
}

func TestValidatePriceRules(t *testing.T) {
	for text, want := range map[string]string{
		"":    "price must be greater than 0",
		"0":   "price must be greater than 0",
		"-3":  "price must be greater than 0",
		"abc": "price must be a number",
	} {
		err := Validate(sampleForm{Name: "x", Price: text}, sampleMessages)
		assert.Equal(t, want, Message(err), "price %q", text)
	}

	assert.NoError(t, Validate(sampleForm{Name: "x", Price: "0,5"}, sampleMessages))
}

func TestValidateFallbackMessage(t *testing.T) {
	err := Validate(sampleForm{Name: "x", Price: "1", Link: "not a url"}, sampleMessages)
	assert.Equal(t, "invalid link", Message(err))
}

func TestCoerceText(t *testing.T) {
	for in, want := range map[any]string{
		12.5:   "12.5",
		7:      "7",
		"3,20": "3,20",
	} {
		got, err := CoerceText(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := CoerceText(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal(" 12,50 ")
	require.NoError(t, err)
	assert.Equal(t, "12.5", d.String())

	_, err = ParseDecimal("1.000,00")
	assert.Error(t, err)
}
