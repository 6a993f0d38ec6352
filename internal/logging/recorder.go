package logging

import "sync"

type Entry struct {
	Level   Level
	Message string
	Attrs   map[string]interface{}
}

// Recorder keeps every entry in memory. It backs a Logger in tests.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func NewRecorder() (*Logger, *Recorder) {
	r := &Recorder{}
	return New(LevelDebug, r.handle), r
}

func (r *Recorder) handle(level Level, msg string, attrs map[string]interface{}) {
	copied := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		copied[k] = v
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: msg, Attrs: copied})
}

func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
