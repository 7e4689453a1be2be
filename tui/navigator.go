package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Navigator lets code outside the UI loop, such as the session monitor,
// move the UI to another screen. Messages are delivered asynchronously so
// it is safe to call from inside Update.
type Navigator struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

func NewNavigator() *Navigator {
	return &Navigator{}
}

// Attach connects the navigator to a running program.
func (n *Navigator) Attach(p *tea.Program) {
	n.AttachFunc(p.Send)
}

func (n *Navigator) AttachFunc(send func(tea.Msg)) {
	n.mu.Lock()
	n.send = send
	n.mu.Unlock()
}

// ToLogin is the session monitor's expiry hook.
func (n *Navigator) ToLogin() {
	n.mu.RLock()
	send := n.send
	n.mu.RUnlock()
	if send == nil {
		return
	}
	go send(navigateMsg{to: screenLogin, expired: true})
}
