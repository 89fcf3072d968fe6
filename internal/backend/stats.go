package backend

import "sync/atomic"

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

// Stats is a point-in-time snapshot of the client's call counters.
type Stats struct {
	Calls    uint64 `json:"calls"`
	Failures uint64 `json:"failures"`
}
