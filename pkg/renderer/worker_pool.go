package renderer

import (
	"context"
	"image"
	"runtime"
	"sync"

	"github.com/NickEvans/go-raytracer/pkg/core"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile *Tile
}

// TileResult contains the rendered pixels for one tile
type TileResult struct {
	TileID int
	Bounds image.Rectangle
	Pix    []core.Vec3 // Row-major pixels within Bounds
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool creates a worker pool sized for numTiles tasks. The
// raytracer is shared: it is stateless during rendering, and each task
// carries its own random generator.
func NewWorkerPool(raytracer *Raytracer, numTiles, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		// Buffers sized so submits and result sends never block
		taskQueue:   make(chan TileTask, numTiles),
		resultQueue: make(chan TileResult, numTiles),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			raytracer:   raytracer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers. Cancelling the context makes workers drop
// their remaining tasks and exit.
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop shuts down all workers and waits for them to finish. After
// cancellation the workers have already dropped their queues, so this
// returns promptly.
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// Results returns the channel of completed tiles
func (wp *WorkerPool) Results() <-chan TileResult {
	return wp.resultQueue
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-w.taskQueue:
			if !ok {
				return
			}

			pix := w.raytracer.renderTile(task.Tile.Bounds, task.Tile.Random)

			// Buffered queue, but respect cancellation anyway
			select {
			case w.resultQueue <- TileResult{TileID: task.Tile.ID, Bounds: task.Tile.Bounds, Pix: pix}:
			case <-ctx.Done():
				return
			}
		}
	}
}
