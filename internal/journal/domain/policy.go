package domain

// DecryptPolicy selects what happens to a record that fails to decrypt while a
// thread is being resolved.
type DecryptPolicy string

const (
	// PolicySkip omits the failed record and its follow-ups and logs the failure.
	// Used for the bulk history listing.
	PolicySkip DecryptPolicy = "skip"

	// PolicyReport keeps the failed record as a placeholder marked DecryptionFailed
	// and still resolves its follow-ups and siblings. Used for single-entry views.
	PolicyReport DecryptPolicy = "report"
)

// ParseDecryptPolicy converts a query parameter into a DecryptPolicy.
// An empty string selects PolicyReport.
func ParseDecryptPolicy(s string) (DecryptPolicy, error) {
	switch DecryptPolicy(s) {
	case "", PolicyReport:
		return PolicyReport, nil
	case PolicySkip:
		return PolicySkip, nil
	default:
		return "", ErrInvalidDecryptPolicy
	}
}
