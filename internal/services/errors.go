package services

// EnrichmentError wraps the failure that aborted the enrichment pipeline.
// Nothing is ever persisted once it is returned.
type EnrichmentError struct {
	Cause error
}

func (e *EnrichmentError) Error() string {
	return "enrichment failed: " + e.Cause.Error()
}

func (e *EnrichmentError) Unwrap() error {
	return e.Cause
}
