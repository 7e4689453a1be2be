package viewmodel

import (
	"clementus360/taskai/api"
	"clementus360/taskai/config"
	"clementus360/taskai/types"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ChatGateway is the assistant capability used by ChatView.
type ChatGateway interface {
	SendMessage(ctx context.Context, text string) (string, error)
}

// ChatView keeps the chat transcript and applies sends optimistically: the
// user's message is shown before the server answers and taken back out if
// the send fails. Only one send may be in flight at a time.
type ChatView struct {
	gw    ChatGateway
	now   func() time.Time
	newID func() string

	mu         sync.Mutex
	transcript Transcript
	sending    bool
	err        string
}

type ChatOption func(*ChatView)

func WithClock(now func() time.Time) ChatOption {
	return func(v *ChatView) { v.now = now }
}

func WithIDGenerator(newID func() string) ChatOption {
	return func(v *ChatView) { v.newID = newID }
}

func NewChatView(gw ChatGateway, opts ...ChatOption) *ChatView {
	v := &ChatView{
		gw:    gw,
		now:   time.Now,
		newID: NewMessageID,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// NewMessageID returns a UUIDv7. Its leading bits are a millisecond clock
// reading and the generator keeps a sequence within the same millisecond,
// so ids are unique and sort in creation order.
func NewMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// PendingSend is a send whose optimistic message is already in the
// transcript and whose server call has not finished yet.
type PendingSend struct {
	view    *ChatView
	text    string
	before  Transcript
	message types.Message

	once sync.Once
}

// Begin validates text, marks the view as sending and appends the user's
// message. The caller must call Complete on the result.
func (v *ChatView) Begin(text string) (*PendingSend, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.sending {
		return nil, ErrSendInFlight
	}

	msg := types.Message{
		ID:        v.newID(),
		Role:      types.RoleUser,
		Content:   text,
		Timestamp: v.now(),
	}
	p := &PendingSend{view: v, text: text, before: v.transcript, message: msg}

	v.transcript = v.transcript.Append(msg)
	v.sending = true
	v.err = ""
	return p, nil
}

func (p *PendingSend) Message() types.Message { return p.message }

// Complete calls the assistant and reconciles the transcript: on success the
// reply is appended, on failure the transcript goes back to what it was
// before Begin. The sending state is always cleared.
func (p *PendingSend) Complete(ctx context.Context) (types.Message, error) {
	var (
		reply types.Message
		err   error
		ran   bool
	)
	p.once.Do(func() {
		ran = true
		reply, err = p.complete(ctx)
	})
	if !ran {
		return types.Message{}, ErrSendCompleted
	}
	return reply, err
}

func (p *PendingSend) complete(ctx context.Context) (types.Message, error) {
	v := p.view
	text, err := v.gw.SendMessage(ctx, p.text)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.sending = false

	if err != nil {
		config.Logger.Error("Failed to send chat message:", err)
		v.transcript = p.before
		v.err = api.UserMessage(err, config.MsgSendFailed)
		return types.Message{}, err
	}

	reply := types.Message{
		ID:        v.newID(),
		Role:      types.RoleAssistant,
		Content:   text,
		Timestamp: v.now(),
	}
	v.transcript = v.transcript.Append(reply)
	return reply, nil
}

// Send is Begin followed by Complete.
func (v *ChatView) Send(ctx context.Context, text string) error {
	p, err := v.Begin(text)
	if err != nil {
		return err
	}
	_, err = p.Complete(ctx)
	return err
}

func (v *ChatView) Transcript() Transcript {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.transcript
}

func (v *ChatView) Messages() []types.Message {
	return v.Transcript().Messages()
}

func (v *ChatView) Sending() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sending
}

func (v *ChatView) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Reset empties the transcript. It refuses while a send is in flight.
func (v *ChatView) Reset() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.sending {
		return false
	}
	v.transcript = Transcript{}
	v.err = ""
	return true
}
