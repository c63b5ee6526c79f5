package core

// Logger is implemented by the logging services (see services/logger).
// args may hold errors, maps of extra data and at most one session.Session for person tracking.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Metrics is the subset of instrumentation the core packages report to.
type Metrics interface {
	CatalogUnavailable(source string)
	NavigationBuilt(nodes int)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) CatalogUnavailable(string) {}
func (NopMetrics) NavigationBuilt(int)       {}
