// Tracker is the push-style progress channel consumed by the UI: per-item
// counts across the company/job/candidate hierarchy, current item labels,
// a status string and a rolling log of free-text lines.

package progress

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Level identifies one tier of the traversal hierarchy.
type Level int

const (
	LevelCompany Level = iota
	LevelJob
	LevelCandidate
)

const maxLogLines = 200

type Counts struct {
	Total     int `json:"total"`
	Processed int `json:"processed"`
}

// Snapshot is one point-in-time view of a run, serializable as-is for the
// progress endpoint.
type Snapshot struct {
	Status           string    `json:"status"`
	Companies        Counts    `json:"companies"`
	Jobs             Counts    `json:"jobs"`
	Candidates       Counts    `json:"candidates"`
	CurrentCompany   string    `json:"currentCompany"`
	CurrentJob       string    `json:"currentJob"`
	CurrentCandidate string    `json:"currentCandidate"`
	Log              []string  `json:"log"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type Tracker struct {
	mu   sync.Mutex
	snap Snapshot
	subs map[int]chan Snapshot
	next int
}

func NewTracker() *Tracker {
	return &Tracker{subs: make(map[int]chan Snapshot)}
}

// Begin resets counters and opens a new run with the given status line.
func (t *Tracker) Begin(status string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	logLines := t.snap.Log
	t.snap = Snapshot{Status: status, Log: logLines}
	t.mu.Unlock()
	t.publish()
}

func (t *Tracker) SetStatus(status string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.snap.Status = status
	t.mu.Unlock()
	t.publish()
}

// SetTotal records how many items one level of the traversal will visit.
func (t *Tracker) SetTotal(level Level, total int) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.counts(level).Total = total
	t.mu.Unlock()
	t.publish()
}

// Item marks one item at the given level as the current one and counts it
// as processed.
func (t *Tracker) Item(level Level, label string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.counts(level).Processed++
	switch level {
	case LevelCompany:
		t.snap.CurrentCompany = label
	case LevelJob:
		t.snap.CurrentJob = label
	case LevelCandidate:
		t.snap.CurrentCandidate = label
	}
	t.mu.Unlock()
	t.publish()
}

// Logf mirrors a free-text line to the process log and the rolling UI log.
func (t *Tracker) Logf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	log.Print(line)
	if t == nil {
		return
	}
	t.mu.Lock()
	t.snap.Log = append(t.snap.Log, line)
	if len(t.snap.Log) > maxLogLines {
		t.snap.Log = t.snap.Log[len(t.snap.Log)-maxLogLines:]
	}
	t.mu.Unlock()
	t.publish()
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() Snapshot {
	if t == nil {
		return Snapshot{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.copyLocked()
}

// Subscribe registers a push channel for snapshot updates. Slow consumers
// miss intermediate snapshots instead of blocking the scrape. The returned
// func unsubscribes.
func (t *Tracker) Subscribe() (<-chan Snapshot, func()) {
	if t == nil {
		ch := make(chan Snapshot)
		close(ch)
		return ch, func() {}
	}
	t.mu.Lock()
	id := t.next
	t.next++
	ch := make(chan Snapshot, 1)
	t.subs[id] = ch
	t.mu.Unlock()

	return ch, func() {
		t.mu.Lock()
		if sub, ok := t.subs[id]; ok {
			delete(t.subs, id)
			close(sub)
		}
		t.mu.Unlock()
	}
}

func (t *Tracker) counts(level Level) *Counts {
	switch level {
	case LevelJob:
		return &t.snap.Jobs
	case LevelCandidate:
		return &t.snap.Candidates
	default:
		return &t.snap.Companies
	}
}

func (t *Tracker) copyLocked() Snapshot {
	snap := t.snap
	snap.Log = append([]string(nil), t.snap.Log...)
	snap.UpdatedAt = time.Now()
	return snap
}

func (t *Tracker) publish() {
	t.mu.Lock()
	snap := t.copyLocked()
	for _, ch := range t.subs {
		select {
		case ch <- snap:
		default:
			// drop stale update, replace with the fresh one
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
	t.mu.Unlock()
}
