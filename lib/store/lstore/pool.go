package lstore

import (
	"sync"

	"github.com/IEcheandia/scanmaster-sub023/lib/wire"
)

// bufferPool recycles growable buffers used for copying values.
type bufferPool struct {
	pool sync.Pool
}

var wireBufferPool = &bufferPool{
	pool: sync.Pool{
		New: func() any { return wire.NewGrowable(256) },
	},
}

func (p *bufferPool) Get() *wire.ByteBuffer {
	return p.pool.Get().(*wire.ByteBuffer)
}

func (p *bufferPool) Put(buf *wire.ByteBuffer) {
	// oversized buffers are left to the GC
	if buf.Capacity() > 1<<20 {
		return
	}
	buf.Clear()
	p.pool.Put(buf)
}
