package batch

import (
	"sync"

	"github.com/five82/imgresize/internal/pipeline"
	"github.com/five82/imgresize/internal/pixelbuf"
)

// The minimum batch size at which Run chooses RunPipeline over RunPool when
// max_speed is requested is Run's threshold argument
// (config.DefaultPipelineThreshold unless overridden).

type decodedJob struct {
	item Item
	buf  *pixelbuf.Buffer
}

type resizedJob struct {
	item Item
	buf  *pixelbuf.Buffer
}

// groupSizes splits the worker budget across decode/resize/encode stages
// roughly 1:2:1, each group at least 1 worker, per spec.md §4.8.
func groupSizes(threads int) (decoders, resizers, encoders int) {
	if threads < 1 {
		threads = 1
	}
	decoders = threads / 4
	encoders = threads / 4
	resizers = threads - decoders - encoders
	if decoders < 1 {
		decoders = 1
	}
	if encoders < 1 {
		encoders = 1
	}
	if resizers < 1 {
		resizers = 1
	}
	return decoders, resizers, encoders
}

// RunPipeline executes items across three specialized worker groups
// connected by bounded channels, per spec.md §4.8. Queue depth is roughly
// 2x the downstream stage's worker count, bounding peak memory.
func RunPipeline(p *pipeline.Pipeline, items []Item, threads int, stopOnError bool) Result {
	collector := NewCollector(len(items))
	abort := &AbortFlag{}

	decoders, resizers, encoders := groupSizes(threads)

	itemsCh := make(chan Item, len(items))
	for _, it := range items {
		itemsCh <- it
	}
	close(itemsCh)

	decodedCh := make(chan decodedJob, resizers*2)
	resizedCh := make(chan resizedJob, encoders*2)

	var decodeWg, resizeWg, encodeWg sync.WaitGroup

	for i := 0; i < decoders; i++ {
		decodeWg.Add(1)
		go func() {
			defer decodeWg.Done()
			for it := range itemsCh {
				if stopOnError && abort.IsSet() {
					collector.RecordErr(it.InputPath, errSkippedDueToStop{})
					continue
				}
				buf, err := p.Decode(it.InputPath, it.OutputPath, it.Options)
				if err != nil {
					collector.RecordErr(it.InputPath, err)
					if stopOnError {
						abort.Set()
					}
					continue
				}
				decodedCh <- decodedJob{item: it, buf: buf}
			}
		}()
	}
	go func() {
		decodeWg.Wait()
		close(decodedCh)
	}()

	for i := 0; i < resizers; i++ {
		resizeWg.Add(1)
		go func() {
			defer resizeWg.Done()
			for job := range decodedCh {
				if stopOnError && abort.IsSet() {
					collector.RecordErr(job.item.InputPath, errSkippedDueToStop{})
					continue
				}
				out, err := p.Resize(job.item.InputPath, job.buf, job.item.Options)
				if err != nil {
					collector.RecordErr(job.item.InputPath, err)
					if stopOnError {
						abort.Set()
					}
					continue
				}
				resizedCh <- resizedJob{item: job.item, buf: out}
			}
		}()
	}
	go func() {
		resizeWg.Wait()
		close(resizedCh)
	}()

	for i := 0; i < encoders; i++ {
		encodeWg.Add(1)
		go func() {
			defer encodeWg.Done()
			for job := range resizedCh {
				if stopOnError && abort.IsSet() {
					p.ReleaseResult(job.buf)
					collector.RecordErr(job.item.InputPath, errSkippedDueToStop{})
					continue
				}
				err := p.Encode(job.item.OutputPath, job.buf, job.item.Options.Quality)
				p.ReleaseResult(job.buf)
				if err != nil {
					collector.RecordErr(job.item.InputPath, err)
					if stopOnError {
						abort.Set()
					}
					continue
				}
				collector.RecordOK()
			}
		}()
	}
	encodeWg.Wait()

	return collector.Result()
}
