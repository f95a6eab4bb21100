// Package progress is the observational collaborator: every major step
// of a run emits a discrete event here. Nothing in the engine depends on
// a reporter's return value.
package progress

import (
	"fmt"
	"log"
)

type Level int

const (
	Info Level = iota
	Success
	Warn
	Error
)

// Event is one progress notification.
type Event struct {
	Level   Level
	Scope   string // e.g. "craigslist", "facebook", "sheets"
	Message string
}

// Reporter receives events as they happen.
type Reporter interface {
	Report(e Event)
}

// LogReporter writes events through the standard logger.
type LogReporter struct{}

var glyphs = map[Level]string{Info: "▶", Success: "✓", Warn: "⚠", Error: "✗"}

func (LogReporter) Report(e Event) {
	log.Printf("[%s] %s %s", e.Scope, glyphs[e.Level], e.Message)
}

// Recorder captures events for inspection in tests.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Report(e Event) {
	r.Events = append(r.Events, e)
}

// Count returns how many captured events carry the given level.
func (r *Recorder) Count(level Level) int {
	n := 0
	for _, e := range r.Events {
		if e.Level == level {
			n++
		}
	}
	return n
}

func Infof(r Reporter, scope, format string, args ...any) {
	r.Report(Event{Info, scope, fmt.Sprintf(format, args...)})
}

func Successf(r Reporter, scope, format string, args ...any) {
	r.Report(Event{Success, scope, fmt.Sprintf(format, args...)})
}

func Warnf(r Reporter, scope, format string, args ...any) {
	r.Report(Event{Warn, scope, fmt.Sprintf(format, args...)})
}

func Errorf(r Reporter, scope, format string, args ...any) {
	r.Report(Event{Error, scope, fmt.Sprintf(format, args...)})
}
