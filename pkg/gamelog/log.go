package gamelog

import "errors"

// EmptyLogError is returned by DropLast when there is nothing to drop.
type EmptyLogError struct{}

func (e *EmptyLogError) Error() string {
	return "log is empty: nothing to undo"
}

// ErrEmptyLog is the error DropLast returns on an empty log.
var ErrEmptyLog error = &EmptyLogError{}

// IsEmptyLog returns true if err is or wraps an *EmptyLogError.
func IsEmptyLog(err error) bool {
	var target *EmptyLogError
	return errors.As(err, &target)
}

// Log is the ordered, append-only sequence of entries of one game.
// Log is not safe for concurrent mutation; callers serialise Append and
// DropLast.
type Log struct {
	entries []Entry
}

// NewLog creates a log holding a copy of entries.
func NewLog(entries ...Entry) *Log {
	l := &Log{entries: make([]Entry, len(entries))}
	for i, e := range entries {
		l.entries[i] = e.Clone()
	}
	return l
}

// Append adds a copy of e at the end of the log.
func (l *Log) Append(e Entry) {
	l.entries = append(l.entries, e.Clone())
}

// DropLast removes and returns the newest entry. Earlier entries are untouched.
func (l *Log) DropLast() (Entry, error) {
	if len(l.entries) == 0 {
		return Entry{}, ErrEmptyLog
	}
	last := l.entries[len(l.entries)-1]
	l.entries = l.entries[:len(l.entries)-1]
	return last, nil
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a snapshot of the log, oldest first. The snapshot shares
// no memory with the log.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Clone()
	}
	return out
}
