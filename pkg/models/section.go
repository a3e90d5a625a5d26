package models

// SectionStatus is the closed set of states an analysis section can be in.
type SectionStatus string

const (
	// StatusOK means the analyzer ran and produced a payload.
	StatusOK SectionStatus = "ok"
	// StatusUnavailable means a required capability or dependency is absent
	// (no pretrained model loaded, analyzer timed out, etc.).
	StatusUnavailable SectionStatus = "unavailable"
	// StatusFailed means the analyzer ran but errored on this specific input.
	StatusFailed SectionStatus = "failed"
)

// Section wraps one analyzer's output. Exactly one of Data, Reason or Error
// is meaningful, selected by Status. Every engine and collaborator result is
// normalized into this shape so a single section's failure never aborts the
// aggregate report.
type Section[T any] struct {
	Status SectionStatus `json:"status"`
	Data   *T            `json:"data,omitempty"`
	Reason string        `json:"reason,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// OK builds a successful section.
func OK[T any](data T) Section[T] {
	return Section[T]{Status: StatusOK, Data: &data}
}

// Unavailable builds a section for an absent capability.
func Unavailable[T any](reason string) Section[T] {
	return Section[T]{Status: StatusUnavailable, Reason: reason}
}

// Failed builds a section for an analyzer error.
func Failed[T any](err error) Section[T] {
	s := Section[T]{Status: StatusFailed}
	if err != nil {
		s.Error = err.Error()
	}
	return s
}

// IsOK reports whether the section completed successfully.
func (s Section[T]) IsOK() bool {
	return s.Status == StatusOK && s.Data != nil
}

// Payload returns the section data when present, or the zero value otherwise.
// Dependent analyzers use this to substitute empty defaults for upstream
// sections that did not resolve.
func (s Section[T]) Payload() (T, bool) {
	if s.IsOK() {
		return *s.Data, true
	}
	var zero T
	return zero, false
}
