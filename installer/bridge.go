package installer

import (
	"sync"
	"time"
)

// WatchCancelFlag polls read at the given interval and cancels ctx as soon
// as it reports true. The caller's flag is only ever read, never written.
// The returned stop function signals the polling goroutine and waits for it
// to exit, so no goroutine outlives the installation call.
func WatchCancelFlag(ctx *TaskContext, read func() bool, interval time.Duration) (stop func()) {
	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if ctx.IsCancelled() {
					return
				}
				if read != nil && read() {
					ctx.Cancel()
					return
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
		wg.Wait()
	}
}
