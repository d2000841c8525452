package entity

// DraftStatus tracks where a draft is in its delivery lifecycle.
type DraftStatus string

const (
	// StatusDraft is the initial state of every draft.
	StatusDraft DraftStatus = "draft"
	// StatusSent marks a draft whose last send succeeded for every recipient.
	StatusSent DraftStatus = "sent"
	// StatusFailed marks a draft whose last send failed for at least one recipient.
	StatusFailed DraftStatus = "failed"
)

// String returns the status as its stored representation.
func (s DraftStatus) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known statuses.
func (s DraftStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusFailed:
		return true
	default:
		return false
	}
}
