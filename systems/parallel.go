package systems

import (
	"math/rand/v2"
	"runtime"
	"sync"
)

// walkScratch holds per-worker random state. Each worker re-keys its own
// source per particle, so workers never contend on a shared generator.
type walkScratch struct {
	src *rand.PCG
	rng *rand.Rand
}

func newWalkScratch() walkScratch {
	src := rand.NewPCG(0, 0)
	return walkScratch{src: src, rng: rand.New(src)}
}

// workChunk is a contiguous, disjoint range of particle indices.
type workChunk struct {
	start, end int
}

// workerPool runs chunks of a walker tick on persistent goroutines.
type workerPool struct {
	scratches  []walkScratch
	numWorkers int

	workChan chan workChunk // sends work to workers
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks live workers
	pending  sync.WaitGroup // tracks chunks of the current tick
	running  bool
}

func newWorkerPool(numWorkers int) *workerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	scratches := make([]walkScratch, numWorkers)
	for i := range scratches {
		scratches[i] = newWalkScratch()
	}
	return &workerPool{
		numWorkers: numWorkers,
		scratches:  scratches,
	}
}

// startWorkers launches the worker goroutines for w.
func (p *workerPool) startWorkers(w *Walker) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(w, i)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *workerPool) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	p.running = false
}

// worker processes chunks until stopped.
func (p *workerPool) worker(w *Walker, workerID int) {
	defer p.wg.Done()
	scratch := &p.scratches[workerID]

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			w.clamped.Add(int64(w.stepRange(scratch, chunk.start, chunk.end)))
			p.pending.Done()
		}
	}
}

// run dispatches [0, n) in chunks of chunkSize and blocks until every chunk
// has completed. It returns the number of chunks dispatched.
func (p *workerPool) run(w *Walker, n, chunkSize int) int {
	if !p.running {
		p.startWorkers(w)
	}

	chunks := (n + chunkSize - 1) / chunkSize
	p.pending.Add(chunks)
	for start := 0; start < n; start += chunkSize {
		p.workChan <- workChunk{start: start, end: min(start+chunkSize, n)}
	}
	p.pending.Wait()
	return chunks
}
