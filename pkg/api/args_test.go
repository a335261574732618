package api

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgSpecCheck(t *testing.T) {
	assert.NoError(t, ArgSpec{}.Check())
	assert.NoError(t, ArgSpec{Type: "integer", Required: true}.Check())
	assert.NoError(t, ArgSchema{"a": {Type: "array"}, "b": {Type: "object"}}.Check())

	err := ArgSchema{"a": {Type: "string"}, "b": {Type: "uuid"}}.Check()
	assert.ErrorContains(t, err, `argument "b"`)
	assert.ErrorContains(t, err, "type failed oneof")
}

func TestArgSchemaNames(t *testing.T) {
	s := ArgSchema{"zeta": {}, "alpha": {}, "mid": {}}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, s.Names())
	assert.Empty(t, ArgSchema(nil).Names())
}

func TestArgSchemaCheckValues(t *testing.T) {
	s := ArgSchema{
		"page":   {Type: "integer", Default: 1},
		"price":  {Type: "number"},
		"draft":  {Type: "boolean"},
		"status": {Enum: []string{"open"}},
		"sku":    {Required: true},
	}

	values := url.Values{"price": {"9.99"}, "draft": {"true"}, "sku": {"A1"}}
	assert.Nil(t, s.checkValues(values))
	assert.Equal(t, "1", values.Get("page"))

	values = url.Values{"page": {"x"}, "price": {"cheap"}, "draft": {"maybe"}, "status": {"closed"}}
	details := s.checkValues(values)
	assert.Equal(t, map[string][]string{
		"draft":  {"type"},
		"page":   {"type"},
		"price":  {"type"},
		"sku":    {"required"},
		"status": {"enum"},
	}, details)
}
