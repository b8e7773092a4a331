package onboarding

import (
	"fmt"
	"sync"
	"time"
)

// Step indices of the canonical five-step flow. Step 0 is satisfied by
// the OAuth login itself; the remaining steps each contribute a slice
// of the profile.
const (
	StepAccount = iota // identity established via OAuth
	StepBasics         // username, full_name, bio, location, avatar_url
	StepRole           // user_type, employment_type
	StepSkills         // skills, interests
	StepSocials        // github_url, linkedin_url
	TotalSteps
)

// Flow drives the linear onboarding sequence for one session. It
// accumulates partial data across steps with no persistence: losing the
// session loses the flow.
type Flow struct {
	mu      sync.Mutex
	step    int
	data    map[string]any
	touched time.Time
}

// NewFlow starts a flow at step 0 with no accumulated data.
func NewFlow() *Flow {
	return &Flow{
		data:    make(map[string]any),
		touched: time.Now(),
	}
}

// Advance merges partial into the accumulated data (shallow merge,
// right-hand precedence). On non-terminal steps the index moves
// forward and ready is false. On the terminal step the index stays put
// and ready is true with a snapshot of the merged data for submission;
// if submission fails the caller simply retries, the flow has not
// moved.
func (f *Flow) Advance(partial map[string]any) (snapshot map[string]any, ready bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = time.Now()

	for k, v := range partial {
		f.data[k] = v
	}

	if f.step >= TotalSteps-1 {
		return f.snapshotLocked(), true
	}
	f.step++
	return f.snapshotLocked(), false
}

// Retreat moves one step back. At step 0 it is a no-op. Data gathered
// on later steps is retained, not cleared.
func (f *Flow) Retreat() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = time.Now()

	if f.step > 0 {
		f.step--
	}
	return f.step
}

// JumpToStep moves to an absolute step index. Used to skip onboarding
// when a profile already exists, or to reset to the start on sign-out.
func (f *Flow) JumpToStep(n int) error {
	if n < 0 || n >= TotalSteps {
		return fmt.Errorf("step %d out of range [0,%d]", n, TotalSteps-1)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = time.Now()
	f.step = n
	return nil
}

// Step returns the current step index.
func (f *Flow) Step() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Progress is derived, not stored: (step+1)/total as a percentage.
func (f *Flow) Progress() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return float64(f.step+1) / float64(TotalSteps) * 100
}

// Data returns a snapshot of the accumulated fields.
func (f *Flow) Data() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Flow) snapshotLocked() map[string]any {
	out := make(map[string]any, len(f.data))
	for k, v := range f.data {
		out[k] = v
	}
	return out
}

func (f *Flow) idleSince() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched
}
