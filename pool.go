package chjoin

import "sync"

// FilterMask is a pooled row-filter buffer.
// Call Release when done to return it to the pool.
type FilterMask struct {
	Data []uint8
	pool *sync.Pool
}

func (m *FilterMask) Release() {
	if m.pool == nil || m.Data == nil {
		return
	}
	for i := range m.Data {
		m.Data[i] = 0
	}
	m.pool.Put(m)
}

// OffsetSlice is a pooled offsets-to-replicate buffer.
type OffsetSlice struct {
	Data []uint64
	pool *sync.Pool
}

func (s *OffsetSlice) Release() {
	if s.pool == nil || s.Data == nil {
		return
	}
	s.pool.Put(s)
}

// Pool sizes are power-of-2 buckets, one sync.Pool per bucket, sized
// for the left-block row counts a single probe call handles.
var (
	filterPools [32]*sync.Pool
	offsetPools [32]*sync.Pool
	poolInit sync.Once
)

func initPools() {
	poolInit.Do(func() {
		for i := range filterPools {
			size := 1 << i
			filterPools[i] = &sync.Pool{
				New: func() interface{} { return &FilterMask{Data: make([]uint8, size)} },
			}
			offsetPools[i] = &sync.Pool{
				New: func() interface{} { return &OffsetSlice{Data: make([]uint64, size)} },
			}
		}
	})
}

// getBucket returns the pool bucket index for a given size (smallest
// power of 2 >= size).
func getBucket(size int) int {
	if size <= 0 {
		return 0
	}
	bucket := 0
	n := size - 1
	for n > 0 {
		n >>= 1
		bucket++
	}
	if bucket >= 32 {
		bucket = 31
	}
	return bucket
}

func getFilterMask(size int) *FilterMask {
	initPools()
	bucket := getBucket(size)
	pool := filterPools[bucket]
	mask := pool.Get().(*FilterMask)
	mask.pool = pool

	if len(mask.Data) != size {
		if size > (1 << bucket) {
			mask.Data = make([]uint8, size)
		} else {
			mask.Data = mask.Data[:size]
		}
	}
	return mask
}

func getOffsetSlice(size int) *OffsetSlice {
	initPools()
	bucket := getBucket(size)
	pool := offsetPools[bucket]
	s := pool.Get().(*OffsetSlice)
	s.pool = pool

	if len(s.Data) != size {
		if size > (1 << bucket) {
			s.Data = make([]uint64, size)
		} else {
			s.Data = s.Data[:size]
		}
	}
	return s
}
