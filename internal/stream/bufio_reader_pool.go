package stream

import (
	"bufio"
	"io"
	"sync"
)

var DefaultBufioReaderPool = BufioReaderPool{MaxSize: 4096}

// BufioReaderPool recycles bufio readers between connections.
type BufioReaderPool struct {
	pool    sync.Pool
	MaxSize int
}

// Get returns a reader wrapping the source, reusing a pooled one when
// available.
func (rdp *BufioReaderPool) Get(reader io.Reader) *bufio.Reader {
	if item := rdp.pool.Get(); item != nil {
		rd := item.(*bufio.Reader)
		rd.Reset(reader)
		return rd
	}
	if rdp.MaxSize > 0 {
		return bufio.NewReaderSize(reader, rdp.MaxSize)
	}
	return bufio.NewReader(reader)
}

// Put resets the reader and returns it to the pool.
func (rdp *BufioReaderPool) Put(reader *bufio.Reader) {
	reader.Reset(nil)
	rdp.pool.Put(reader)
}
