package extraction

import "time"

// Operation labels.
const (
	OperationExtract  = "extract"
	OperationPriority = "priority"
)

// Path labels describing which engine produced a result.
const (
	PathRemote   = "remote"
	PathLocal    = "local"
	PathFallback = "fallback"
)

// Recorder receives extraction telemetry. Implementations must be safe for
// concurrent use.
type Recorder interface {
	ObserveExtraction(operation, path string, tasks int)
	ObserveRemoteFailure(operation, kind string)
	ObserveRemoteDuration(operation string, d time.Duration)
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) ObserveExtraction(string, string, int)       {}
func (NopRecorder) ObserveRemoteFailure(string, string)         {}
func (NopRecorder) ObserveRemoteDuration(string, time.Duration) {}
