package telemetry

import (
	"fmt"
)

// API is an abstraction over logging so that components can be tested for
// what they report.
//
// Ids name the component that reported, not the specific line. They are
// lowercase, use underscores for large components and dashes for methods
// of a component, ex. `ranker.rank` or `catalog.read-table`.
type API interface {
	// ReportBroken reports something that failed and should be addressed.
	ReportBroken(id string, params ...any)
	// ReportWarning reports a scenario that may be subject to investigation
	// but did not stop the work.
	ReportWarning(id string, params ...any)
	// ReportDebug reports debug information.
	ReportDebug(msg string, params ...any)
	// ReportCount reports the current count of some event. Counts are points
	// over time, they should not be summed.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id with a namespace, like a sub-logger.
type ScopedAPI struct {
	namespace string
	inner     API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(fmt.Sprintf("%s: %s", s.namespace, msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(fmt.Sprintf("%s: %s", s.namespace, id), count)
}
