package importer

// ProgressReporter receives progress updates from a running import. The
// orchestrator calls it from the importing goroutine; implementations
// that feed a UI must do their own synchronization.
type ProgressReporter interface {
	// Report is called with a completion fraction in [0, 1] and a short
	// human-readable status line.
	Report(fraction float64, message string)
}

// ReporterFunc adapts a function to the ProgressReporter interface.
type ReporterFunc func(fraction float64, message string)

// Report implements ProgressReporter.
func (f ReporterFunc) Report(fraction float64, message string) {
	f(fraction, message)
}

// NopReporter discards progress updates.
var NopReporter = ReporterFunc(func(float64, string) {})
