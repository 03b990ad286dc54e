package audit

import "time"

// IsModifiedDateUpdated reports whether a change satisfied the modified-date
// rule: the old and new instants differ, or the instant is the current time at
// millisecond resolution.
func IsModifiedDateUpdated(oldModified time.Time, newModified time.Time, now time.Time) bool {
	if !oldModified.UTC().Equal(newModified.UTC()) {
		return true
	}
	return newModified.UTC().Equal(now.UTC().Truncate(time.Millisecond))
}

// EvaluateComparisons returns the new paths of comparisons that fail the rule, in input order.
func EvaluateComparisons(comparisons []MetadataComparison, now time.Time) []string {
	violations := make([]string, 0)
	for _, comparison := range comparisons {
		if IsModifiedDateUpdated(comparison.OldModified, comparison.NewModified, now) {
			continue
		}
		violations = append(violations, comparison.Change.NewPath)
	}
	return violations
}
