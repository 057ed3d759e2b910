package renderer

import (
	"context"
	"runtime"
	"sync"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile          *Tile
	PassNumber    int
	TargetSamples int
	TaskID        int          // Index into the tile list
	PixelStats    []PixelStats // Shared pixel stats array to write to
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	ctx         context.Context
	renderer    *TileRenderer
	taskQueue   chan TileTask
	resultQueue chan TileResult
	numWorkers  int
	wg          sync.WaitGroup
	startOnce   sync.Once
	stopOnce    sync.Once
}

// NewWorkerPool creates a worker pool sized for numTiles tasks per pass
func NewWorkerPool(ctx context.Context, renderer *TileRenderer, numTiles, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		ctx:         ctx,
		renderer:    renderer,
		taskQueue:   make(chan TileTask, numTiles),   // Buffer for a whole pass
		resultQueue: make(chan TileResult, numTiles), // Buffer for a whole pass
		numWorkers:  numWorkers,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	wp.startOnce.Do(func() {
		for i := 0; i < wp.numWorkers; i++ {
			wp.wg.Add(1)
			go wp.run()
		}
	})
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		close(wp.taskQueue) // No more tasks
		wp.wg.Wait()        // Wait for workers to finish
		close(wp.resultQueue)
	})
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		// The tile's own sampler keeps results independent of which worker runs it
		stats, err := wp.renderer.RenderTileBounds(wp.ctx, task.Tile.Bounds, task.PixelStats, task.Tile.Sampler, task.TargetSamples)

		wp.resultQueue <- TileResult{
			TaskID: task.TaskID,
			Stats:  stats,
			Error:  err,
		}
	}
}
