package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringArrayScanJSON(t *testing.T) {
	var a StringArray
	err := a.Scan([]byte(`["flour","eggs","milk"]`))
	assert.NoError(t, err)
	assert.Equal(t, StringArray{"flour", "eggs", "milk"}, a)
}

func TestStringArrayScanLegacyText(t *testing.T) {
	var a StringArray
	err := a.Scan("['chicken', 'rice', 'soy sauce']")
	assert.NoError(t, err)
	assert.Equal(t, StringArray{"chicken", "rice", "soy sauce"}, a)
}

func TestStringArrayScanEmpty(t *testing.T) {
	cases := []interface{}{nil, "", "[]", []byte("[]")}
	for _, c := range cases {
		var a StringArray
		err := a.Scan(c)
		assert.NoError(t, err)
		assert.NotNil(t, a)
		assert.Len(t, a, 0)
	}
}

func TestStringArrayValue(t *testing.T) {
	v, err := StringArray{"a", "b"}.Value()
	assert.NoError(t, err)
	assert.Equal(t, `["a","b"]`, v)

	v, err = StringArray{}.Value()
	assert.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestStringArrayRoundTrip(t *testing.T) {
	orig := StringArray{"salt", "pepper"}
	v, err := orig.Value()
	assert.NoError(t, err)

	var got StringArray
	err = got.Scan(v)
	assert.NoError(t, err)
	assert.Equal(t, orig, got)
}
