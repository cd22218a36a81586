package queue

import "errors"

// ErrClosed is returned by Enqueue once the scheduler has been closed.
var ErrClosed = errors.New("queue: scheduler closed")
