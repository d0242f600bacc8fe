package download

import (
	"github.com/handiism/rom-archiver/internal/model"
	"golang.org/x/sync/errgroup"
)

// runPool starts exactly workers goroutines that call handle for every task.
//
// All tasks are queued before the channel is closed; workers exit when the
// channel is drained, and runPool returns after the last one exits.
func runPool(workers int, tasks []model.DownloadTask, handle func(model.DownloadTask)) {
	queue := make(chan model.DownloadTask, len(tasks))

	var g errgroup.Group
	for range workers {
		g.Go(func() error {
			for task := range queue {
				handle(task)
			}
			return nil
		})
	}

	for _, task := range tasks {
		queue <- task
	}
	close(queue)

	g.Wait()
}
