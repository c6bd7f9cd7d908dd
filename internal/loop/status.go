package loop

import "time"

// Status is a point-in-time view of the loop for the status endpoint.
type Status struct {
	State       string    `json:"state"`
	Attempt     int       `json:"attempt"`
	Cycles      int64     `json:"cycles"`
	Failures    int64     `json:"failures"`
	CycleID     string    `json:"cycle_id,omitempty"`
	LastSuccess time.Time `json:"last_success,omitzero"`
	LastError   string    `json:"last_error,omitempty"`
}

// Status returns a copy of the current status.
func (l *Loop) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.status
	s.State = l.State().String()
	return s
}

func (l *Loop) beginCycle(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.status.CycleID = id
}

func (l *Loop) endCycle(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.status.Cycles++
	if err != nil {
		l.status.Failures++
		l.status.LastError = err.Error()
		return
	}
	l.status.LastSuccess = time.Now()
	l.status.LastError = ""
}

func (l *Loop) setAttempt(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.status.Attempt = n
}
