package viewmodel

import (
	"clementus360/taskai/api"
	"clementus360/taskai/config"
	"clementus360/taskai/types"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func fixedClock() func() time.Time {
	at := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	return func() time.Time { return at }
}

// primedChat returns a view whose transcript already holds n exchanges.
func primedChat(t *testing.T, gw *fakeChat, n int) *ChatView {
	t.Helper()
	v := NewChatView(gw, WithClock(fixedClock()))
	for i := 0; i < n; i++ {
		if err := v.Send(context.Background(), fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("priming send %d: %v", i, err)
		}
	}
	return v
}

func TestSendSuccessAppendsUserAndAssistant(t *testing.T) {
	gw := &fakeChat{reply: "Done! I added it."}
	v := primedChat(t, gw, 1)
	before := v.Transcript().Len()

	if err := v.Send(context.Background(), "add a task to buy milk"); err != nil {
		t.Fatalf("send: %v", err)
	}

	msgs := v.Messages()
	if len(msgs) != before+2 {
		t.Fatalf("expected %d messages, got %d", before+2, len(msgs))
	}
	user, reply := msgs[len(msgs)-2], msgs[len(msgs)-1]
	if user.Role != types.RoleUser || user.Content != "add a task to buy milk" {
		t.Fatalf("unexpected user message %+v", user)
	}
	if reply.Role != types.RoleAssistant || reply.Content != "Done! I added it." {
		t.Fatalf("unexpected reply %+v", reply)
	}
	if v.Sending() || v.Err() != "" {
		t.Fatalf("unexpected state sending=%v err=%q", v.Sending(), v.Err())
	}
}

func TestSendFailureRollsBack(t *testing.T) {
	gw := &fakeChat{reply: "ok"}
	v := primedChat(t, gw, 2)
	before := v.Messages()

	gw.err = &api.TransportError{Method: "POST", Path: "/api/chat", Err: errors.New("timeout")}
	if err := v.Send(context.Background(), "this one fails"); err == nil {
		t.Fatalf("expected error")
	}

	after := v.Messages()
	if len(after) != len(before) {
		t.Fatalf("expected rollback to %d messages, got %d", len(before), len(after))
	}
	for i := range before {
		if after[i].ID != before[i].ID {
			t.Fatalf("message %d changed after rollback", i)
		}
	}
	if v.Err() != config.MsgSendFailed {
		t.Fatalf("unexpected error text %q", v.Err())
	}
	if v.Sending() {
		t.Fatalf("sending flag left set")
	}
}

func TestSendFailureShowsServerDetail(t *testing.T) {
	gw := &fakeChat{err: &api.RequestError{Status: 503, Detail: "AI service unavailable"}}
	v := NewChatView(gw)

	_ = v.Send(context.Background(), "hi")
	if v.Err() != "AI service unavailable" {
		t.Fatalf("unexpected error text %q", v.Err())
	}
	if v.Transcript().Len() != 0 {
		t.Fatalf("expected empty transcript after rollback")
	}
}

func TestSendUnauthenticatedRollsBackSilently(t *testing.T) {
	gw := &fakeChat{err: fmt.Errorf("send chat message: %w", api.ErrUnauthenticated)}
	v := NewChatView(gw)

	err := v.Send(context.Background(), "hi")
	if !errors.Is(err, api.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if v.Err() != "" || v.Transcript().Len() != 0 {
		t.Fatalf("expected silent rollback, err=%q len=%d", v.Err(), v.Transcript().Len())
	}
}

func TestSendRejectsBlankInput(t *testing.T) {
	gw := &fakeChat{reply: "ok"}
	v := NewChatView(gw)

	for _, text := range []string{"", "   ", "\n\t"} {
		if err := v.Send(context.Background(), text); !errors.Is(err, ErrEmptyMessage) {
			t.Fatalf("Send(%q): expected ErrEmptyMessage, got %v", text, err)
		}
	}
	if gw.sent() != 0 || v.Transcript().Len() != 0 {
		t.Fatalf("blank input reached the gateway or transcript")
	}
}

func TestBeginIsOptimisticAndExclusive(t *testing.T) {
	gw := &fakeChat{reply: "sure", gate: make(chan struct{})}
	v := NewChatView(gw)

	p, err := v.Begin("first")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if !v.Sending() {
		t.Fatalf("expected sending after Begin")
	}
	if last, ok := v.Transcript().Last(); !ok || last.ID != p.Message().ID {
		t.Fatalf("optimistic message missing from transcript")
	}

	if _, err := v.Begin("second"); !errors.Is(err, ErrSendInFlight) {
		t.Fatalf("expected ErrSendInFlight, got %v", err)
	}
	if v.Reset() {
		t.Fatalf("reset must refuse while sending")
	}

	done := make(chan error, 1)
	go func() {
		_, err := p.Complete(context.Background())
		done <- err
	}()
	close(gw.gate)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("complete: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("complete did not return")
	}

	if v.Transcript().Len() != 2 || v.Sending() {
		t.Fatalf("unexpected state len=%d sending=%v", v.Transcript().Len(), v.Sending())
	}
	if _, err := p.Complete(context.Background()); !errors.Is(err, ErrSendCompleted) {
		t.Fatalf("expected ErrSendCompleted on second Complete, got %v", err)
	}
	if gw.sent() != 1 {
		t.Fatalf("expected exactly one gateway call, got %d", gw.sent())
	}
}

func TestCompleteHonoursCancellation(t *testing.T) {
	gw := &fakeChat{reply: "never", gate: make(chan struct{})}
	v := NewChatView(gw)

	p, err := v.Begin("hello")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Complete(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if v.Transcript().Len() != 0 || v.Sending() {
		t.Fatalf("cancelled send was not rolled back")
	}
}

func TestMessageIDsAreDistinct(t *testing.T) {
	gw := &fakeChat{reply: "ok"}
	v := primedChat(t, gw, 20)

	seen := map[string]bool{}
	for _, m := range v.Messages() {
		if m.ID == "" || seen[m.ID] {
			t.Fatalf("duplicate or empty id %q", m.ID)
		}
		seen[m.ID] = true
	}
	if len(seen) != 40 {
		t.Fatalf("expected 40 ids, got %d", len(seen))
	}
}

func TestTranscriptAppendLeavesOriginal(t *testing.T) {
	base := NewTranscript(types.Message{ID: "a"})
	next := base.Append(types.Message{ID: "b"})

	if base.Len() != 1 || next.Len() != 2 {
		t.Fatalf("unexpected lengths base=%d next=%d", base.Len(), next.Len())
	}
	if base.Contains("b") || !next.Contains("a") {
		t.Fatalf("append leaked into the original transcript")
	}

	msgs := next.Messages()
	msgs[0].ID = "changed"
	if !next.Contains("a") {
		t.Fatalf("Messages returned shared storage")
	}
}

func TestResetClearsTranscript(t *testing.T) {
	v := primedChat(t, &fakeChat{reply: "ok"}, 1)
	if !v.Reset() {
		t.Fatalf("reset refused while idle")
	}
	if v.Transcript().Len() != 0 {
		t.Fatalf("expected empty transcript")
	}
}
