package domain

// SuitabilityResult describes how a product fared against a set of dietary
// restrictions. A restriction lands in exactly one of the three buckets:
// confirmed satisfied, confirmed violated, or unknown (the product data was
// not sufficient to decide). Unknown is never treated as violated.
type SuitabilityResult struct {
	Suitable  bool     `json:"isSuitable"`
	Satisfied []string `json:"restrictionsSatisfied,omitempty"`
	Violated  []string `json:"restrictionsViolated,omitempty"`
	Unknown   []string `json:"restrictionsUnknown,omitempty"`
	Rationale string   `json:"rationale,omitempty"`
}

// SatisfiedCount returns the number of confirmed-satisfied restrictions.
// Used as a ranking tie-breaker by the matcher.
func (s *SuitabilityResult) SatisfiedCount() int {
	return len(s.Satisfied)
}
