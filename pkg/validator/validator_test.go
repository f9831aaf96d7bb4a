package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ratingPayload struct {
	UserID    int64  `json:"user_id" validate:"required,gt=0"`
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Score     int    `json:"score" validate:"min=1,max=5"`
	Content   string `json:"content,omitempty" validate:"omitempty,max=10"`
	Kind      string `json:"kind" validate:"omitempty,oneof=a b"`
	Internal  string `json:"-" validate:"omitempty,min=2"`
}

func validPayload() ratingPayload {
	return ratingPayload{UserID: 7, ProductID: 42, Score: 5}
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, Validate(validPayload()))
}

func TestValidate_MissingRequired_UsesJSONName(t *testing.T) {
	p := validPayload()
	p.UserID = 0

	err := Validate(p)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "user_id")
	assert.Equal(t, "is required", fields["user_id"])
}

func TestValidate_NumericBounds(t *testing.T) {
	p := validPayload()
	p.Score = 6

	var valErr *ValidationError
	require.ErrorAs(t, Validate(p), &valErr)
	assert.Equal(t, "must be at most 5", valErr.Fields()["score"])

	p.Score = 0
	require.ErrorAs(t, Validate(p), &valErr)
	assert.Equal(t, "must be at least 1", valErr.Fields()["score"])
}

func TestValidate_TextLength(t *testing.T) {
	p := validPayload()
	p.Content = "this is far too long"

	var valErr *ValidationError
	require.ErrorAs(t, Validate(p), &valErr)
	assert.Equal(t, "must be at most 10 characters", valErr.Fields()["content"])
}

func TestValidate_OneOf(t *testing.T) {
	p := validPayload()
	p.Kind = "c"

	var valErr *ValidationError
	require.ErrorAs(t, Validate(p), &valErr)
	assert.Equal(t, "must be one of: a b", valErr.Fields()["kind"])
}

func TestValidationError_First(t *testing.T) {
	p := validPayload()
	p.UserID = -1
	p.Score = 9

	var valErr *ValidationError
	require.ErrorAs(t, Validate(p), &valErr)
	assert.Equal(t, "user_id must be greater than 0", valErr.First())
	assert.Contains(t, valErr.Error(), "field 'score' must be at most 5")
}

func TestValidationError_First_Empty(t *testing.T) {
	assert.Equal(t, "", (&ValidationError{}).First())
}
