package ua

import (
	"sync"

	"github.com/djherbis/buffer"
)

const defaultBufferSize = 64 * 1024

// bufferPool supplies the partitioned write buffers used when encoding
// top-level messages and length-prefixed extension object bodies.
var bufferPool = buffer.NewMemPoolAt(int64(defaultBufferSize))

// bytesPool is a pool of byte slices for scratch encodes.
var bytesPool = sync.Pool{New: func() interface{} { s := make([]byte, defaultBufferSize); return &s }}
