package stream

import (
	"bufio"
	"io"
	"sync"
)

var DefaultBufioWriterPool BufioWriterPool

// BufioWriterPool recycles bufio writers between connections.
type BufioWriterPool struct {
	pool    sync.Pool
	MaxSize int
}

// Get returns a writer wrapping the sink, reusing a pooled one when
// available.
func (wrp *BufioWriterPool) Get(writer io.Writer) *bufio.Writer {
	if item := wrp.pool.Get(); item != nil {
		wr := item.(*bufio.Writer)
		wr.Reset(writer)
		return wr
	}
	if wrp.MaxSize > 0 {
		return bufio.NewWriterSize(writer, wrp.MaxSize)
	}
	return bufio.NewWriter(writer)
}

// Put resets the writer and returns it to the pool. Flush first.
func (wrp *BufioWriterPool) Put(writer *bufio.Writer) {
	writer.Reset(nil)
	wrp.pool.Put(writer)
}
