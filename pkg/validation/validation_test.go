package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-atributos/pkg/validation"
)

type item struct {
	Name  string   `json:"name" validate:"notblank"`
	Kind  string   `json:"kind" validate:"omitempty,oneof=a b"`
	Tags  []string `json:"tags" validate:"dive,notblank"`
	Count int      `yaml:"count" validate:"gte=0"`
}

func TestStruct_OK(t *testing.T) {
	require.NoError(t, validation.Struct(item{Name: "Weight", Kind: "a", Tags: []string{"x"}}))
}

func TestStruct_Errors(t *testing.T) {
	err := validation.Struct(item{Name: "  ", Kind: "c", Tags: []string{""}, Count: -1})
	require.Error(t, err)

	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 4)
	assert.Contains(t, err.Error(), "name es obligatorio")
	assert.Contains(t, err.Error(), "kind debe ser uno de: a b")
	assert.Contains(t, err.Error(), "tags[0] es obligatorio")
	assert.Contains(t, err.Error(), "count debe ser mayor o igual a 0")
}
