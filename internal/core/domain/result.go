package domain

// Fingerprint is a composite value derived from a project snapshot's own
// content combined with the freshness stamps of every transitively
// referenced artifact and nested snapshot. Two snapshots with identical
// fingerprints are semantically interchangeable for caching purposes.
type Fingerprint string

// Severity classifies a diagnostic.
type Severity string

const (
	// SeverityError is a diagnostic that makes the checked file invalid.
	SeverityError Severity = "error"
	// SeverityWarning is a diagnostic that does not invalidate the file.
	SeverityWarning Severity = "warning"
)

// Diagnostic is a single finding reported by the external checker.
type Diagnostic struct {
	File     string
	Line     int
	Column   int
	Severity Severity
	Message  string
}

// CheckResult is the outcome of checking one file against a project
// snapshot. Diagnostics preserve the checker's reporting order.
//
// References holds the resolved reference bytes the check was produced
// against. They stay reachable only while a cache entry or a caller retains
// the result; evicting or clearing the cache drops them.
type CheckResult struct {
	Diagnostics []Diagnostic
	Fingerprint Fingerprint
	References  []ResolvedReference
}

// HasErrors reports whether any diagnostic has error severity.
func (r *CheckResult) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ResolvedReference carries the bytes of one resolved artifact reference to
// the external checker.
type ResolvedReference struct {
	Identity string
	Data     []byte
}
