// Package parallel provides fork-join helpers for splitting per-pixel work
// across CPU cores.
//
// Image stages are embarrassingly parallel across rows: each output row
// depends only on input pixels, never on other output rows. Rows splits the
// image into contiguous bands, one per worker, and blocks until all bands
// are done. Stages that need neighborhood reads keep a separate source
// buffer, so banding never races.
package parallel

import (
	"runtime"
	"sync"
)

// minRowsPerWorker is the band size below which goroutine overhead costs
// more than it saves.
const minRowsPerWorker = 32

// Workers returns the worker count used for n rows when the caller does not
// specify one: GOMAXPROCS capped so each worker gets at least
// minRowsPerWorker rows.
func Workers(rows int) int {
	w := runtime.GOMAXPROCS(0)
	if max := rows / minRowsPerWorker; w > max {
		w = max
	}
	if w < 1 {
		w = 1
	}
	return w
}

// Rows runs fn over [0,height) split into contiguous bands across workers
// goroutines and waits for completion. fn receives the half-open row range
// [y0,y1). workers <= 0 selects a count automatically.
func Rows(height, workers int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	if workers <= 0 {
		workers = Workers(height)
	}
	if workers > height {
		workers = height
	}
	if workers == 1 {
		fn(0, height)
		return
	}

	band := height / workers
	rem := height % workers

	var wg sync.WaitGroup
	y := 0
	for i := 0; i < workers; i++ {
		h := band
		if i < rem {
			h++
		}
		y0, y1 := y, y+h
		y = y1
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(y0, y1)
		}()
	}
	wg.Wait()
}
