package mempool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFloat32Length(t *testing.T) {
	for _, n := range []int{1, 100, 1024, 1025, 50000} {
		buf := GetFloat32(n)
		require.Len(t, buf, n)
		PutFloat32(buf)
	}
}

func TestGetFloat32Zero(t *testing.T) {
	assert.Empty(t, GetFloat32(0))
}

func TestPutGetReusesCapacity(t *testing.T) {
	buf := GetFloat32(3000)
	capBefore := cap(buf)
	PutFloat32(buf)

	// Same size class must be satisfiable without growing.
	again := GetFloat32(2500)
	assert.LessOrEqual(t, cap(again), capBefore+classStep)
	PutFloat32(again)
}

func TestGetBoolZeroed(t *testing.T) {
	buf := GetBool(500)
	for i := range buf {
		buf[i] = true
	}
	PutBool(buf)

	clean := GetBool(500)
	require.Len(t, clean, 500)
	for i, v := range clean {
		require.False(t, v, "index %d not cleared", i)
	}
	PutBool(clean)
}

func TestPutNilIsSafe(t *testing.T) {
	PutFloat32(nil)
	PutBool(nil)
}
