package stdlib_test

import (
	"testing"

	"github.com/mna/loxvm/internal/stdlib"
	"github.com/mna/loxvm/lang/heap"
	"github.com/mna/loxvm/lang/value"
	"github.com/stretchr/testify/require"
)

func TestRegisterDefinesClock(t *testing.T) {
	h := heap.New()
	globals := heap.NewTable()
	stdlib.Register(h, globals)

	name := h.InternString("clock")
	v, ok := globals.Get(name)
	require.True(t, ok)
	require.True(t, v.IsObject())

	native, ok := v.AsObject().(*value.Native)
	require.True(t, ok)
	require.Equal(t, "clock", native.Name)

	result, err := native.Fn(nil)
	require.NoError(t, err)
	require.True(t, result.IsNumber())
	require.Greater(t, result.AsNumber(), 0.0)
}
