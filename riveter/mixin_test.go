package riveter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riveter/object"
	"riveter/riveter"
)

func TestMixin(t *testing.T) {
	t.Parallel()

	t.Run("one donor", func(t *testing.T) {
		t.Parallel()

		f := named()
		riveter.Init(f)
		_, err := f.Mixin(mixinA)
		require.NoError(t, err)

		inst := f.New("Who")
		assert.Equal(t, "Oh, hai Who", call(t, inst, "greet"))
		assertCapabilities(t, f)
	})

	t.Run("two donors", func(t *testing.T) {
		t.Parallel()

		f := named()
		riveter.Init(f)
		_, err := f.Mixin(mixinA, mixinC)
		require.NoError(t, err)

		inst := f.New("Who")
		assert.Equal(t, "Oh, hai Who", call(t, inst, "greet"))
		assert.Equal(t, "Buh Bye Who", call(t, inst, "sayGoodbye"))
	})

	t.Run("prototype member is not patched", func(t *testing.T) {
		t.Parallel()

		f := named()
		f.Prototype().Set("greet", helloGreet)
		riveter.Init(f)
		_, err := f.Mixin(mixinA)
		require.NoError(t, err)

		assert.Equal(t, "Hello Who", call(t, f.New("Who"), "greet"))
	})

	t.Run("last donor wins among donors", func(t *testing.T) {
		t.Parallel()

		f := named()
		riveter.Init(f)
		_, err := f.Mixin(mixinB, mixinA)
		require.NoError(t, err)

		assert.Equal(t, "Oh, hai Who", call(t, f.New("Who"), "greet"))
	})

	t.Run("inherited member is preserved", func(t *testing.T) {
		t.Parallel()

		parent := named()
		parent.Prototype().Set("greet", helloGreet)
		child, err := riveter.Extend(parent, nil, nil)
		require.NoError(t, err)

		_, err = riveter.Mixin(child, mixinA)
		require.NoError(t, err)

		assert.False(t, child.Prototype().Has("greet"))
		assert.Equal(t, "Hello Who", call(t, child.New("Who"), "greet"))
	})
}

func TestMixinAttachesAndReturnsEntity(t *testing.T) {
	t.Parallel()

	f := named()
	res, err := riveter.Mixin(f)
	require.NoError(t, err)
	assert.Same(t, f, res)
	assertCapabilities(t, f)
}

func TestMixinRejectsNilDonor(t *testing.T) {
	t.Parallel()

	f := named()
	_, err := riveter.Mixin(f, mixinA, nil)
	require.ErrorIs(t, err, riveter.ErrInvalidDonor)
	assert.False(t, f.HasOperation(riveter.CapMixin))
	assert.False(t, f.Prototype().Has("greet"))

	_, err = riveter.Mixin(nil, mixinA)
	require.ErrorIs(t, err, riveter.ErrNilEntity)
}

func TestMixinDoesNotAliasDonors(t *testing.T) {
	t.Parallel()

	donor := object.New().With("count", 1)
	f := named()
	_, err := riveter.Mixin(f, donor)
	require.NoError(t, err)

	donor.Set("count", 2)
	donor.Set("late", true)
	assert.Equal(t, 1, f.Prototype().Get("count"))
	assert.False(t, f.Prototype().Has("late"))
}
