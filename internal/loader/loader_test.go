package loader

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riveter/object"
)

func TestLoadFile(t *testing.T) {
	f, err := LoadFile(filepath.Join("testdata", "zoo.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, []string{"walker", "barker"}, f.Donors.Names())
	require.Len(t, f.Entities, 2)

	animal := f.Entities[0]
	assert.Equal(t, "Animal", animal.Name)
	require.NotNil(t, animal.Init)
	assert.Equal(t, "named", animal.Init.Name)
	assert.Nil(t, animal.Deep)
	assert.Equal(t, []string{"settings", "tags"}, animal.Statics.Keys())
	assert.Equal(t, FuncRef{Name: "describe"}, animal.Prototype.Get("describe"))

	dog := f.Entities[1]
	assert.Equal(t, "Animal", dog.Extends)
	require.NotNil(t, dog.Deep)
	assert.True(t, *dog.Deep)
	assert.Equal(t, StringOrArray{"walker"}, dog.Compose)
	assert.Equal(t, StringOrArray{"barker"}, dog.Punch)
	assert.True(t, dog.Mixin.IsEmpty())
	assert.Equal(t, []string{"walker", "barker"}, dog.DonorNames())

	re, ok := dog.Prototype.Get("pattern").(*regexp.Regexp)
	require.True(t, ok)
	assert.True(t, re.MatchString("wooof"))

	walker, ok := f.Donors.Get("walker")
	require.True(t, ok)
	mixin, ok := walker.Get("mixin").(*object.Object)
	require.True(t, ok)
	assert.Equal(t, 4, mixin.Get("legs"))

	_, ok = f.Donors.Get("flyer")
	assert.False(t, ok)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Defaults(t *testing.T) {
	f, err := Parse([]byte("entities:\n  - name: Solo\n"))
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, f.Version)
	assert.True(t, f.Entities[0].Statics.IsZero())
	assert.Empty(t, f.Donors)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"donors not a mapping", "donors: [a]\n"},
		{"donor not a mapping", "donors:\n  a: 1\n"},
		{"statics not a mapping", "entities:\n  - name: A\n    statics: [1]\n"},
		{"bad regexp", "entities:\n  - name: A\n    prototype:\n      p: !regexp \"(\"\n"},
		{"unknown tag", "entities:\n  - name: A\n    prototype:\n      p: !money 12\n"},
		{"empty init", "entities:\n  - name: A\n    init: \"\"\n"},
		{"compose mapping", "entities:\n  - name: A\n    compose: {a: 1}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseDocument(t *testing.T) {
	doc := `
name: sample
count: 3
ratio: 0.5
on: true
nothing: null
born: 2024-03-01T10:00:00Z
list: [1, two]
nested:
  z: 1
  a: 2
`

	obj, err := ParseDocument([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "count", "ratio", "on", "nothing", "born", "list", "nested"}, obj.Keys())
	assert.Equal(t, "sample", obj.Get("name"))
	assert.Equal(t, 3, obj.Get("count"))
	assert.InDelta(t, 0.5, obj.Get("ratio"), 1e-9)
	assert.Equal(t, true, obj.Get("on"))
	assert.True(t, obj.Has("nothing"))
	assert.Nil(t, obj.Get("nothing"))
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), obj.Get("born"))
	assert.Equal(t, []any{1, "two"}, obj.Get("list"))

	nested, ok := obj.Get("nested").(*object.Object)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a"}, nested.Keys())
}

func TestParseDocument_AliasesAndMergeKeys(t *testing.T) {
	doc := `
base: &base
  a: 1
  b: 1
extra: &extra
  b: 2
  c: 2
child:
  <<: [*base, *extra]
  a: 0
copy: *base
`

	obj, err := ParseDocument([]byte(doc))
	require.NoError(t, err)

	child := obj.Get("child").(*object.Object)
	assert.Equal(t, 0, child.Get("a"))
	assert.Equal(t, 1, child.Get("b"))
	assert.Equal(t, 2, child.Get("c"))

	cp := obj.Get("copy").(*object.Object)
	assert.Equal(t, map[string]any{"a": 1, "b": 1}, cp.Map())
}

func TestParseDocument_Empty(t *testing.T) {
	obj, err := ParseDocument(nil)
	require.NoError(t, err)
	assert.Zero(t, obj.Len())
}

func TestParseDocument_NonMappingRoot(t *testing.T) {
	_, err := ParseDocument([]byte("- 1\n- 2\n"))
	assert.Error(t, err)
}

func TestLoadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: {b: 1}\n"), 0o644))

	obj, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, 1, obj.Get("a").(*object.Object).Get("b"))
}

func TestParseDocument_ExcessiveAliasing(t *testing.T) {
	doc := `a: &a ["x","x","x","x","x","x","x","x","x","x"]
b: &b [*a,*a,*a,*a,*a,*a,*a,*a,*a,*a]
c: &c [*b,*b,*b,*b,*b,*b,*b,*b,*b,*b]
d: &d [*c,*c,*c,*c,*c,*c,*c,*c,*c,*c]
e: &e [*d,*d,*d,*d,*d,*d,*d,*d,*d,*d]
f: &f [*e,*e,*e,*e,*e,*e,*e,*e,*e,*e]
g: &g [*f,*f,*f,*f,*f,*f,*f,*f,*f,*f]
`

	_, err := ParseDocument([]byte(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExcessiveAliasing)
}

func TestParseDocument_ModestAliasing(t *testing.T) {
	doc := `a: &a ["x","x","x"]
b: &b [*a,*a,*a]
c: [*b,*b,*b]
`

	obj, err := ParseDocument([]byte(doc))
	require.NoError(t, err)

	c := obj.Get("c").([]any)
	require.Len(t, c, 3)
	assert.Equal(t, []any{"x", "x", "x"}, c[2].([]any)[2])
}

func TestParseDocument_RecursiveAlias(t *testing.T) {
	_, err := ParseDocument([]byte("a: &a [1, *a]\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRecursiveAlias)
}

func TestParseDocument_DuplicateKeys(t *testing.T) {
	_, err := ParseDocument([]byte("a: 1\nb: 2\na: 3\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = ParseDocument([]byte("outer:\n  k: 1\n  k: 2\n"))
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestParse_DuplicateDonors(t *testing.T) {
	_, err := Parse([]byte("donors:\n  walker: {legs: 4}\n  walker: {legs: 2}\nentities: []\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Contains(t, err.Error(), `donor "walker"`)
}
