package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/photoshare/photoshare-api/internal/api/metrics"
	"github.com/photoshare/photoshare-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher removes orphaned image files off the request path. Deletes are
// routed to a fixed set of workers by hashing the file name, so repeated
// requests for the same file land on the same worker and stay ordered.
type Dispatcher struct {
	workers []chan string
	store   ports.FileStore
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, store ports.FileStore, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue schedules a file for deletion. Non-blocking up to channelBuffer
// capacity; cleanup is best effort and never fails the caller.
func (d *Dispatcher) Enqueue(fileName string) {
	i := d.shardIndex(fileName)
	d.workers[i] <- fileName
	metrics.CleanupQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a file name deterministically to a worker index.
func (d *Dispatcher) shardIndex(fileName string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fileName))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case fileName, ok := <-ch:
			if !ok {
				return
			}
			metrics.CleanupQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
			if err := d.store.Remove(ctx, fileName); err != nil {
				metrics.FilesCleanedTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("file_name", fileName).
					Int("worker_id", id).
					Msg("image cleanup failed")
				continue
			}
			metrics.FilesCleanedTotal.WithLabelValues("ok").Inc()
		}
	}
}
