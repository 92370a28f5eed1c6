package batch

import "github.com/five82/imgresize/internal/pipeline"

// Run dispatches to pipeline mode when max_speed is requested and the
// batch is large enough (threshold), otherwise pool mode, per spec.md
// §4.8's engagement rule.
func Run(p *pipeline.Pipeline, items []Item, threads int, maxSpeed, stopOnError bool, threshold int) Result {
	if maxSpeed && len(items) >= threshold {
		return RunPipeline(p, items, threads, stopOnError)
	}
	return RunPool(p, items, threads, stopOnError)
}
