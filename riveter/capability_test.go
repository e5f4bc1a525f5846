package riveter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riveter/riveter"
)

func TestAttachInstallsEveryCapability(t *testing.T) {
	t.Parallel()

	e := named()
	for _, c := range riveter.Capabilities {
		assert.False(t, e.HasOperation(c))
	}

	riveter.Attach(e)
	assertCapabilities(t, e)
}

func TestAttachIsIdempotent(t *testing.T) {
	t.Parallel()

	e := named()
	riveter.Init(e)

	calls := 0
	custom := riveter.Operation(func(a riveter.Args) (*riveter.Entity, error) {
		calls++
		return e, nil
	})
	e.SetOperation(riveter.CapMixin, custom)

	riveter.Attach(e)
	riveter.Init(e, nil)

	_, err := e.Mixin(mixinA)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.False(t, e.Prototype().Has("greet"))
}

func TestSetOperationNilRestoresDefault(t *testing.T) {
	t.Parallel()

	e := named()
	riveter.Attach(e)
	e.SetOperation(riveter.CapPunch, nil)
	assert.False(t, e.HasOperation(riveter.CapPunch))

	_, err := e.Punch(mixinA)
	require.ErrorIs(t, err, riveter.ErrNotAttached)

	riveter.Attach(e)
	_, err = e.Punch(mixinA)
	require.NoError(t, err)
	assert.True(t, e.Prototype().Has("greet"))
}

func TestMethodsRequireAttachment(t *testing.T) {
	t.Parallel()

	e := named()

	_, err := e.Mixin(mixinA)
	require.ErrorIs(t, err, riveter.ErrNotAttached)

	_, err = e.Extend(nil, nil)
	require.ErrorIs(t, err, riveter.ErrNotAttached)
}

func TestForwardersBindTheirEntity(t *testing.T) {
	t.Parallel()

	parent := named()
	child := riveter.NewEntity("Child", nil)
	riveter.Init(parent, child)

	op, ok := child.Operation(riveter.CapInherits)
	require.True(t, ok)

	res, err := op(riveter.Args{Parent: parent})
	require.NoError(t, err)
	assert.Same(t, child, res)
	assert.Same(t, parent, child.Super())
}

func TestEntityBasics(t *testing.T) {
	t.Parallel()

	e := named()
	other := named()

	assert.NotEmpty(t, e.ID())
	assert.NotEqual(t, e.ID(), other.ID())
	assert.Equal(t, "F", e.Name())
	assert.Equal(t, "F", e.String())
	assert.Equal(t, "<anonymous>", riveter.NewEntity("", nil).String())
	assert.Same(t, e, e.Prototype().Get(riveter.ConstructorKey))

	inst := e.New("Who")
	assert.Equal(t, "Who", inst.Get("name"))
	assert.Same(t, e.Prototype(), inst.Proto())

	bare := riveter.NewEntity("Bare", nil).New("ignored")
	assert.Equal(t, 0, bare.Len())

	e.Statics().Set("version", 2)
	assert.Equal(t, 2, e.Member("version"))
	assert.Nil(t, e.Member(riveter.SuperKey))
	assert.Nil(t, e.Member(riveter.SuperProtoKey))
	assert.Equal(t, []*riveter.Entity{e}, e.Chain())
}
