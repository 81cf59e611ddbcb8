package mindchat

import (
	"time"
)

// MessageKind discriminates the MessageEntry union.
type MessageKind string

const (
	KindSystem MessageKind = "system"
	KindUser   MessageKind = "user"
	KindVoice  MessageKind = "voice"
)

// MessageEntry is one immutable entry in the session's ordered log.
// Ordering authority is insertion order, not SentAt.
type MessageEntry struct {
	Kind     MessageKind `json:"kind"`
	Text     string      `json:"text"`
	VoiceRef string      `json:"voice_ref,omitempty"` // kind=voice only
	SentAt   time.Time   `json:"sent_at,omitempty"`   // kind=user/voice only

	// ErrorNotice flags the entry of a fallback pair that tells the
	// user a provider call failed.
	ErrorNotice bool `json:"error_notice,omitempty"`
}

func systemEntry(text string) MessageEntry {
	return MessageEntry{Kind: KindSystem, Text: text}
}

func userEntry(text string, at time.Time) MessageEntry {
	return MessageEntry{Kind: KindUser, Text: text, SentAt: at}
}

// historyWindow returns the last limit non-system entries, preserving order.
func historyWindow(entries []MessageEntry, limit int) []MessageEntry {
	if limit <= 0 {
		return nil
	}
	filtered := make([]MessageEntry, 0, limit)
	for i := len(entries) - 1; i >= 0 && len(filtered) < limit; i-- {
		if entries[i].Kind == KindSystem {
			continue
		}
		filtered = append(filtered, entries[i])
	}
	// Reverse back to chronological order.
	for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	}
	return filtered
}
