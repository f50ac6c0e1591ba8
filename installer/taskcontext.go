package installer

import "sync/atomic"

// TaskContext carries the reporting callbacks and the shared cancellation
// flag of one installation run. Callbacks are invoked synchronously on the
// work goroutine, never concurrently with each other, and may be nil.
type TaskContext struct {
	status    func(message string)
	log       func(message string)
	progress  func(progress float32)
	cancelled *atomic.Bool
}

func NewTaskContext(status, log func(string), progress func(float32)) *TaskContext {
	return &TaskContext{
		status:    status,
		log:       log,
		progress:  progress,
		cancelled: &atomic.Bool{},
	}
}

func (t *TaskContext) Status(message string) {
	if t.status != nil {
		t.status(message)
	}
}

func (t *TaskContext) Log(message string) {
	if t.log != nil {
		t.log(message)
	}
}

// Progress reports completion in the 0.0..1.0 range.
func (t *TaskContext) Progress(progress float32) {
	if t.progress != nil {
		t.progress(progress)
	}
}

func (t *TaskContext) Cancel() {
	t.cancelled.Store(true)
}

func (t *TaskContext) IsCancelled() bool {
	return t.cancelled.Load()
}
