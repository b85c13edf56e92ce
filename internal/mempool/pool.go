package mempool

import "sync"

// Size-classed pools for the hot-path buffers of a detect call: visited
// masks during component extraction and planar pixel buffers for crops and
// warped strips. Buffers are rounded up to 1KiB-element classes so reuse
// survives slightly varying region sizes.

var (
	float32Pools sync.Map // size class -> *sync.Pool of []float32
	boolPools    sync.Map // size class -> *sync.Pool of []bool
)

const classStep = 1024

func sizeClass(n int) int {
	if n <= classStep {
		return classStep
	}
	return (n + classStep - 1) / classStep * classStep
}

// GetFloat32 returns a []float32 of length n from the pool. Contents are
// unspecified; callers that need zeroed memory must clear it. Return the
// buffer with PutFloat32.
func GetFloat32(n int) []float32 {
	cls := sizeClass(n)
	pAny, _ := float32Pools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]float32, cls) }})
	p := pAny.(*sync.Pool)
	buf, ok := p.Get().([]float32)
	if !ok || cap(buf) < cls {
		buf = make([]float32, cls)
	}
	return buf[:n]
}

// PutFloat32 hands a buffer back to the pool. nil is ignored.
func PutFloat32(buf []float32) {
	if buf == nil {
		return
	}
	cls := sizeClass(cap(buf))
	pAny, _ := float32Pools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]float32, cls) }})
	pAny.(*sync.Pool).Put(buf[:cap(buf)]) //nolint:staticcheck
}

// GetBool returns a zeroed []bool of length n from the pool. Return it with
// PutBool.
func GetBool(n int) []bool {
	cls := sizeClass(n)
	pAny, _ := boolPools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]bool, cls) }})
	p := pAny.(*sync.Pool)
	buf, ok := p.Get().([]bool)
	if !ok || cap(buf) < cls {
		buf = make([]bool, cls)
	}
	buf = buf[:n]
	for i := range buf {
		buf[i] = false
	}
	return buf
}

// PutBool hands a buffer back to the pool. nil is ignored.
func PutBool(buf []bool) {
	if buf == nil {
		return
	}
	cls := sizeClass(cap(buf))
	pAny, _ := boolPools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]bool, cls) }})
	pAny.(*sync.Pool).Put(buf[:cap(buf)]) //nolint:staticcheck
}
