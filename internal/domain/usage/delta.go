package usage

import "fmt"

// Delta is one usage increment. All fields are token or event counts and
// must be non-negative; the HTTP boundary is responsible for rejecting
// non-finite JSON numbers before they are narrowed to integers.
type Delta struct {
	TotalTokens       int64
	InputTokens       int64
	OutputTokens      int64
	RequestCount      int64
	SessionCount      int64
	NoteProposalCount int64
}

// Validate rejects deltas with any negative field. A rejected delta must
// not reach storage.
func (d Delta) Validate() error {
	fields := []struct {
		name  string
		value int64
	}{
		{"total_tokens", d.TotalTokens},
		{"input_tokens", d.InputTokens},
		{"output_tokens", d.OutputTokens},
		{"request_count", d.RequestCount},
		{"session_count", d.SessionCount},
		{"note_proposal_count", d.NoteProposalCount},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("usage delta field %s must not be negative, got %d", f.name, f.value)
		}
	}
	return nil
}

// IsZero reports whether the delta carries nothing to record. A zero delta
// is a no-op and must not cause a storage call.
func (d Delta) IsZero() bool {
	return d.TotalTokens == 0 &&
		d.InputTokens == 0 &&
		d.OutputTokens == 0 &&
		d.RequestCount == 0 &&
		d.SessionCount == 0 &&
		d.NoteProposalCount == 0
}

// Normalized derives total tokens from input plus output when the caller
// did not supply an explicit total.
func (d Delta) Normalized() Delta {
	if d.TotalTokens == 0 {
		d.TotalTokens = d.InputTokens + d.OutputTokens
	}
	return d
}
