package batch

import (
	"github.com/five82/imgresize/internal/pipeline"
	"github.com/five82/imgresize/internal/workerpool"
)

// RunPool executes items on a fixed-size worker pool, one task per image,
// per spec.md §4.7 (the default batch strategy).
func RunPool(p *pipeline.Pipeline, items []Item, threads int, stopOnError bool) Result {
	collector := NewCollector(len(items))
	abort := &AbortFlag{}

	pool := workerpool.New(threads, len(items))
	for _, it := range items {
		it := it
		pool.Submit(func() {
			if stopOnError && abort.IsSet() {
				collector.RecordErr(it.InputPath, errSkippedDueToStop{})
				return
			}
			if err := p.Process(it.InputPath, it.OutputPath, it.Options); err != nil {
				collector.RecordErr(it.InputPath, err)
				if stopOnError {
					abort.Set()
				}
				return
			}
			collector.RecordOK()
		})
	}
	pool.Drain()
	pool.Close()

	return collector.Result()
}
