package meshing

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/jonny2027/voxelmesh/internal/voxel"
)

// Job is one chunk meshing request. The result is delivered on Result.
type Job struct {
	Source voxel.Source
	Opts   Options
	Result chan Result
}

// Result is the outcome of one job.
type Result struct {
	Opts Options
	Mesh *MeshResult
	Err  error
}

// Pool fans chunk jobs out over a fixed set of workers. Every worker owns a
// Mesher, so job buffers are allocated once per worker and reused.
type Pool struct {
	jobs    chan Job
	workers int
	size    int32
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewPool starts workers goroutines meshing chunks of the given edge length.
func NewPool(workers, queueSize int, size int32, log *zap.Logger) (*Pool, error) {
	// Validate the chunk size once up front; worker meshers cannot fail after
	// this.
	if _, err := NewMesher(size); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		jobs:    make(chan Job, queueSize),
		workers: workers,
		size:    size,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	return p, nil
}

// Submit enqueues a job without blocking. It reports false when the queue is
// full or the pool is shutting down.
func (p *Pool) Submit(job Job) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobs <- job:
		return true
	default:
		return false
	}
}

// SubmitWait blocks until the job is queued or the pool shuts down.
func (p *Pool) SubmitWait(job Job) {
	select {
	case p.jobs <- job:
	case <-p.ctx.Done():
	}
}

// QueueLen returns the number of queued jobs.
func (p *Pool) QueueLen() int {
	return len(p.jobs)
}

// Shutdown cancels in-flight jobs and waits for the workers to exit.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	mesher, err := NewMesher(p.size)
	if err != nil {
		// Size was validated in NewPool.
		p.log.Error("mesh worker failed to start", zap.Int("worker", id), zap.Error(err))
		return
	}

	for {
		select {
		case job := <-p.jobs:
			mesh, err := mesher.MeshChunk(p.ctx, job.Source, job.Opts)
			if err != nil && err != ErrCanceled {
				p.log.Error("chunk meshing failed",
					zap.Int("worker", id),
					zap.Int32s("origin", job.Opts.Origin[:]),
					zap.Error(err))
			}

			select {
			case job.Result <- Result{Opts: job.Opts, Mesh: mesh, Err: err}:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}
