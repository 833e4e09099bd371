package jobs

import (
	"fmt"
)

type job interface {
	Start() error
	Stop()
}

// JobManager starts and stops the background jobs as one unit.
type JobManager struct {
	jobs []job
}

// NewJobManager takes the relay job and, optionally, the outbox listener.
func NewJobManager(relay *NotificationRelayJob, listener *OutboxListener) *JobManager {
	jm := &JobManager{jobs: []job{relay}}
	if listener != nil {
		jm.jobs = append(jm.jobs, listener)
	}
	return jm
}

// StartAll starts every job in order. If one fails, the ones already
// started are stopped again.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.Start(); err != nil {
			for k := i - 1; k >= 0; k-- {
				jm.jobs[k].Stop()
			}
			return fmt.Errorf("failed to start job %d: %w", i, err)
		}
	}
	return nil
}

// StopAll stops every job in reverse start order.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
}
