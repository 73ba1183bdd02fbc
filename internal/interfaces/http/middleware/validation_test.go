package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type skuPayload struct {
	SKU string `json:"sku" binding:"required,sku"`
}

func TestSetupValidator_SKUTag(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	assert.NoError(t, v.Struct(skuPayload{SKU: "BAKC_U04010"}))
	assert.NoError(t, v.Struct(skuPayload{SKU: " grbe_c02010 "}))
	assert.NoError(t, v.Struct(skuPayload{SKU: "PACK-GRCA-1"}))
	assert.Error(t, v.Struct(skuPayload{SKU: "BAKC U04010"}))
	assert.Error(t, v.Struct(skuPayload{SKU: "   "}))
	assert.Error(t, v.Struct(skuPayload{SKU: ""}))
}

func TestSetupValidator_JSONFieldNames(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	err := v.Struct(skuPayload{})
	require.Error(t, err)

	validationErrors, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
	require.Len(t, validationErrors, 1)
	assert.Equal(t, "sku", validationErrors[0].Field())
}

func TestValidationMessage(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	err := v.Struct(skuPayload{})
	require.Error(t, err)
	assert.Equal(t, "sku is required", ValidationMessage(err))

	err = v.Struct(skuPayload{SKU: "not a sku"})
	require.Error(t, err)
	assert.Contains(t, ValidationMessage(err), "sku must contain only")

	assert.Equal(t, assert.AnError.Error(), ValidationMessage(assert.AnError))
}
