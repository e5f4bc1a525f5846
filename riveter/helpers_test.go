package riveter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riveter/object"
	"riveter/riveter"
)

func method(fn func(this *object.Object, args ...any) string) object.Func {
	return func(this *object.Object, args ...any) any { return fn(this, args...) }
}

func str(this *object.Object, key string) string {
	s, _ := this.Get(key).(string)
	return s
}

// named returns an entity whose body stores the first argument as name.
func named() *riveter.Entity {
	return riveter.NewEntity("F", func(this *object.Object, args ...any) any {
		this.Set("name", args[0])
		return nil
	})
}

func call(t *testing.T, inst *object.Object, name string, args ...any) any {
	t.Helper()

	res, err := inst.Call(name, args...)
	require.NoError(t, err)

	return res
}

func assertCapabilities(t *testing.T, e *riveter.Entity) {
	t.Helper()

	for _, c := range riveter.Capabilities {
		assert.True(t, e.HasOperation(c), "missing %s", c)
	}
}

var (
	mixinA = object.New().With("greet", method(func(this *object.Object, _ ...any) string {
		return "Oh, hai " + str(this, "name")
	}))
	mixinB = object.New().With("greet", method(func(this *object.Object, _ ...any) string {
		return "BOO! " + str(this, "name")
	}))
	mixinC = object.New().With("sayGoodbye", method(func(this *object.Object, _ ...any) string {
		return "Buh Bye " + str(this, "name")
	}))
	helloGreet = method(func(this *object.Object, _ ...any) string {
		return "Hello " + str(this, "name")
	})
)
