package resourcetest

import "sync"

// RecordingQuotaRegistrar is a thread-safe QuotaRegistrar that records every call.
// Unlike a real registrar it keeps duplicates, so tests can count calls.
type RecordingQuotaRegistrar struct {
	mu    sync.Mutex
	calls []string
}

// RegisterResource records the resource name.
func (r *RecordingQuotaRegistrar) RegisterResource(resource string) {
	r.mu.Lock()
	r.calls = append(r.calls, resource)
	r.mu.Unlock()
}

// Calls returns the recorded names in call order.
func (r *RecordingQuotaRegistrar) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallCount returns the number of RegisterResource calls.
func (r *RecordingQuotaRegistrar) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}
