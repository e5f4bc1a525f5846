package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePolicy(t *testing.T) {
	for _, p := range []PolicyEnum{PolicyOverwrite, PolicyKeepExisting} {
		got, ok := ParsePolicy(p.String())
		assert.True(t, ok)
		assert.Equal(t, p, got)
	}

	got, ok := ParsePolicy("keep-existing")
	assert.True(t, ok)
	assert.Equal(t, PolicyKeepExisting, got)

	_, ok = ParsePolicy("merge")
	assert.False(t, ok)
	assert.Equal(t, "unknown", PolicyEnum(9).String())
}

func TestResolve(t *testing.T) {
	assert.Equal(t, Inherit{}, Resolve())
	assert.Equal(t, Inherit{Deep: true, Name: "Dog"}, Resolve(Inherit{Name: "Dog"}, Inherit{Deep: true}))
	assert.Equal(t, Inherit{Deep: false, Name: "Cat"}, Resolve(Inherit{Deep: true}, Inherit{Name: "Cat"}))
}
