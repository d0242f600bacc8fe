// Package download provides the fetch pipeline: reading a directory listing,
// queueing the archives it links to, and downloading them with a fixed-size
// pool of workers.
//
// # Manager
//
// The Manager coordinates the entire fetch process:
//
//  1. Fetch the listing page (any failure aborts the run)
//  2. Extract archive links matching the region filter
//  3. Queue one DownloadTask per archive
//  4. Drain the queue with WorkerCount concurrent workers
//  5. Append files that exhausted their retries to the failure log
//
// # Basic Usage
//
//	manager := download.NewManager(fetchCfg, func(event report.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	summary, err := manager.Run(ctx)
//	if err != nil {
//	    log.Fatal(err) // listing unreachable, or cancelled
//	}
//	fmt.Printf("%d downloaded, %d failed\n", summary.Downloaded, summary.Failed)
//
// # Concurrency
//
// Tasks are sent on a buffered channel which is closed once every task is
// queued. Exactly WorkerCount goroutines range over it under an errgroup, and
// StartDownloads returns only after all of them have exited, so every task
// has reached a terminal state (downloaded, skipped, failed or cancelled).
//
// # Retry Logic
//
// Each file is attempted up to Retry.MaxRetries times with Retry.Backoff
// between attempts. The wait blocks only the worker that is retrying. A file
// already present at its destination is never downloaded again.
package download
