package particlefield

// FrameHandle identifies a scheduled frame callback. The zero handle is
// never issued.
type FrameHandle uint64

// Scheduler runs callbacks once per display frame. Callbacks never overlap:
// the next one starts only after the previous one returned.
type Scheduler interface {
	// ScheduleNext queues fn to run on the next frame.
	ScheduleNext(fn func()) FrameHandle
	// Cancel removes a queued callback. Cancelling a handle that already
	// ran or was already cancelled is a no-op.
	Cancel(h FrameHandle)
}

type frameRequest struct {
	handle FrameHandle
	fn     func()
}

// ManualScheduler is a Scheduler driven by explicit Step calls. It stands in
// for a display-refresh driver in tests and headless tools.
type ManualScheduler struct {
	queue     []frameRequest
	next      FrameHandle
	cancelled []frameRequest
}

// NewManualScheduler returns an empty ManualScheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// ScheduleNext queues fn for the next Step.
func (s *ManualScheduler) ScheduleNext(fn func()) FrameHandle {
	s.next++
	s.queue = append(s.queue, frameRequest{handle: s.next, fn: fn})
	return s.next
}

// Cancel removes h from the queue.
func (s *ManualScheduler) Cancel(h FrameHandle) {
	for i, req := range s.queue {
		if req.handle == h {
			s.cancelled = append(s.cancelled, req)
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return
		}
	}
}

// Step runs every callback that was queued before the call and returns how
// many ran. Callbacks scheduled during the step wait for the next Step.
func (s *ManualScheduler) Step() int {
	batch := s.queue
	s.queue = nil
	for _, req := range batch {
		req.fn()
	}
	return len(batch)
}

// Pending returns the number of queued callbacks.
func (s *ManualScheduler) Pending() int {
	return len(s.queue)
}

// FireCancelled runs the most recently cancelled callback anyway, as a
// misbehaving host might after teardown. Returns false if nothing was
// cancelled.
func (s *ManualScheduler) FireCancelled() bool {
	if len(s.cancelled) == 0 {
		return false
	}
	req := s.cancelled[len(s.cancelled)-1]
	s.cancelled = s.cancelled[:len(s.cancelled)-1]
	req.fn()
	return true
}
