package validation

import (
	"errors"
	"testing"

	"freelance_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name       string `json:"name" binding:"required,max=10"`
	Percentage int    `json:"percentage" binding:"gte=0,lte=100"`
	Kind       string `json:"kind" binding:"omitempty,oneof=a b"`
}

type crossFieldRequest struct {
	A *string `json:"a"`
	B *string `json:"b"`
}

func (r crossFieldRequest) Validate() error {
	if (r.A == nil) == (r.B == nil) {
		return errors.New("exactly one of a or b is required")
	}
	return nil
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, ValidateStruct(&sampleRequest{Name: "ok", Percentage: 50}))

	err := ValidateStruct(&sampleRequest{Percentage: 101, Kind: "c"})
	require.Error(t, err)
	assert.True(t, util.IsBadRequest(err))
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "percentage must be less than or equal to 100")
	assert.Contains(t, err.Error(), "kind must be one of: a b")
}

func TestValidateStructCrossField(t *testing.T) {
	a := "x"
	assert.NoError(t, ValidateStruct(crossFieldRequest{A: &a}))

	err := ValidateStruct(crossFieldRequest{})
	require.Error(t, err)
	assert.True(t, util.IsBadRequest(err))

	err = ValidateStruct(crossFieldRequest{A: &a, B: &a})
	assert.EqualError(t, err, "exactly one of a or b is required")
}
