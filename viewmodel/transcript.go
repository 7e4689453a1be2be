package viewmodel

import (
	"clementus360/taskai/types"
)

// Transcript is an immutable, insertion-ordered sequence of chat messages.
// Append returns a new Transcript and leaves the receiver untouched, so a
// saved value can be restored as-is to undo later appends.
type Transcript struct {
	msgs []types.Message
}

func NewTranscript(msgs ...types.Message) Transcript {
	return Transcript{}.Append(msgs...)
}

func (t Transcript) Len() int { return len(t.msgs) }

// Messages returns a copy.
func (t Transcript) Messages() []types.Message {
	out := make([]types.Message, len(t.msgs))
	copy(out, t.msgs)
	return out
}

func (t Transcript) Append(msgs ...types.Message) Transcript {
	next := make([]types.Message, 0, len(t.msgs)+len(msgs))
	next = append(next, t.msgs...)
	next = append(next, msgs...)
	return Transcript{msgs: next}
}

func (t Transcript) Last() (types.Message, bool) {
	if len(t.msgs) == 0 {
		return types.Message{}, false
	}
	return t.msgs[len(t.msgs)-1], true
}

func (t Transcript) Contains(id string) bool {
	for _, m := range t.msgs {
		if m.ID == id {
			return true
		}
	}
	return false
}
