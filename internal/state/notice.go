package state

import "time"

// Notice durations.
const (
	DeleteNoticeDuration  = 3 * time.Second
	HandoffNoticeDuration = 5 * time.Second
)

// Notice is the transient success banner shown over a ready collection.
type Notice struct {
	Text    string
	Expires time.Time
	Seq     int
}

// Active reports whether a notice is showing.
func (n Notice) Active() bool {
	return n.Text != ""
}

// Handoff carries a one-shot message across a navigation. The first Take
// returns it; every later Take returns nothing.
type Handoff struct {
	message string
}

// NewHandoff wraps message. An empty message yields nil.
func NewHandoff(message string) *Handoff {
	if message == "" {
		return nil
	}
	return &Handoff{message: message}
}

// Take returns the message and clears it.
func (h *Handoff) Take() (string, bool) {
	if h == nil || h.message == "" {
		return "", false
	}
	msg := h.message
	h.message = ""
	return msg, true
}
