package core

import (
	"testing"
)

func TestOutcomeMatched(t *testing.T) {
	matched := Outcome{Status: OutcomeMatched, Match: &MatchResult{MediaID: 1}}
	skipped := Outcome{Status: OutcomeSkipped, Reason: "no matching media"}

	if !matched.Matched() {
		t.Error("expected matched outcome to report Matched()")
	}
	if skipped.Matched() {
		t.Error("expected skipped outcome not to report Matched()")
	}
}

func TestDefaultSalesStatusIsValid(t *testing.T) {
	if err := ValidateSalesStatus(DefaultSalesStatus); err != nil {
		t.Errorf("default sales status rejected: %v", err)
	}
}
