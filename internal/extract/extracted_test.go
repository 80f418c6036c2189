package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtracted(t *testing.T) {
	p := Present("hello")
	v, ok := p.Get()
	assert.True(t, ok)
	assert.Equal(t, "hello", v)
	assert.True(t, p.IsPresent())
	assert.Equal(t, "hello", p.Or("fallback"))

	m := Missing[string]()
	_, ok = m.Get()
	assert.False(t, ok)
	assert.False(t, m.IsPresent())
	assert.Equal(t, "fallback", m.Or("fallback"))
}

func TestExtractedMap(t *testing.T) {
	upper := Map(Present("go"), strings.ToUpper)
	assert.Equal(t, "GO", upper.Or(""))

	missing := Map(Missing[string](), strings.ToUpper)
	assert.False(t, missing.IsPresent())
}

func TestExtractedZeroValueIsMissing(t *testing.T) {
	var e Extracted[int]
	assert.False(t, e.IsPresent())
	assert.Equal(t, 7, e.Or(7))
}
