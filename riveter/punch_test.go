package riveter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riveter/riveter"
)

func TestPunch(t *testing.T) {
	t.Parallel()

	t.Run("one donor", func(t *testing.T) {
		t.Parallel()

		f := named()
		riveter.Init(f)
		_, err := f.Punch(mixinA)
		require.NoError(t, err)

		assert.Equal(t, "Oh, hai Who", call(t, f.New("Who"), "greet"))
		assertCapabilities(t, f)
	})

	t.Run("two donors", func(t *testing.T) {
		t.Parallel()

		f := named()
		riveter.Init(f)
		_, err := f.Punch(mixinA, mixinC)
		require.NoError(t, err)

		inst := f.New("Who")
		assert.Equal(t, "Oh, hai Who", call(t, inst, "greet"))
		assert.Equal(t, "Buh Bye Who", call(t, inst, "sayGoodbye"))
	})

	t.Run("prototype member is overridden", func(t *testing.T) {
		t.Parallel()

		f := named()
		f.Prototype().Set("greet", helloGreet)
		riveter.Init(f)
		_, err := f.Punch(mixinA)
		require.NoError(t, err)

		assert.Equal(t, "Oh, hai Who", call(t, f.New("Who"), "greet"))
	})

	t.Run("last donor wins among donors", func(t *testing.T) {
		t.Parallel()

		f := named()
		riveter.Init(f)
		_, err := f.Punch(mixinB, mixinA)
		require.NoError(t, err)

		assert.Equal(t, "Oh, hai Who", call(t, f.New("Who"), "greet"))
	})

	t.Run("inherited member is shadowed", func(t *testing.T) {
		t.Parallel()

		parent := named()
		parent.Prototype().Set("greet", helloGreet)
		child, err := riveter.Extend(parent, nil, nil)
		require.NoError(t, err)

		_, err = child.Punch(mixinB)
		require.NoError(t, err)

		assert.Equal(t, "BOO! Who", call(t, child.New("Who"), "greet"))
		assert.Equal(t, "Hello Who", call(t, parent.New("Who"), "greet"))
	})
}

func TestPunchRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	_, err := riveter.Punch(nil)
	require.ErrorIs(t, err, riveter.ErrNilEntity)

	_, err = riveter.Punch(named(), nil)
	require.ErrorIs(t, err, riveter.ErrInvalidDonor)
}
