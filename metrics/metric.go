// Package metrics adapts the teacher's Reporter/Request instrumentation
// (originally bracketing one HTTP call) to bracket one Workflow pipeline
// stage instead (build, filter, resolve, evaluate, encode).
package metrics

import "time"

// Reporter creates a Request for a named pipeline stage.
type Reporter interface {
	NewStage(name string) Request
}

// Request brackets a single pipeline stage; EndStage is called once the
// stage finishes, successfully or not.
type Request interface {
	EndStage(err error)
}

// NoOpReporter discards all stage timing. It is the Workflow default.
type NoOpReporter struct{}

func (NoOpReporter) NewStage(name string) Request {
	return noOpStage{}
}

type noOpStage struct{}

func (noOpStage) EndStage(err error) {}

// StageObserver receives a completed stage's name, duration and error.
// LoggingReporter calls it once per EndStage.
type StageObserver func(name string, duration time.Duration, err error)

// LoggingReporter reports stage timing to an observer, e.g. a zerolog
// event closure wired by cmd/geoparse.
type LoggingReporter struct {
	Observe StageObserver
}

func (r LoggingReporter) NewStage(name string) Request {
	return &loggingStage{name: name, start: time.Now(), observe: r.Observe}
}

type loggingStage struct {
	name    string
	start   time.Time
	observe StageObserver
}

func (s *loggingStage) EndStage(err error) {
	if s.observe != nil {
		s.observe(s.name, time.Since(s.start), err)
	}
}
