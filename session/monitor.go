package session

import (
	"clementus360/taskai/config"
	"sync"
)

// Monitor owns the credential store and the reaction to a lost session.
// OnExpire is the navigation hook: it should take the user to the login
// entry point. It is called once per Expire, Guard miss or Logout.
type Monitor struct {
	store Store

	mu       sync.RWMutex
	onExpire func()
}

func NewMonitor(store Store, onExpire func()) *Monitor {
	return &Monitor{store: store, onExpire: onExpire}
}

func (m *Monitor) Store() Store { return m.store }

// SetOnExpire replaces the navigation hook. The UI sets it once it exists.
func (m *Monitor) SetOnExpire(fn func()) {
	m.mu.Lock()
	m.onExpire = fn
	m.mu.Unlock()
}

func (m *Monitor) Credential() (string, bool) {
	return m.store.Get()
}

func (m *Monitor) Authenticated() bool {
	_, ok := m.store.Get()
	return ok
}

// Identity decodes the stored credential. A missing or non-JWT credential
// gives a zero Identity.
func (m *Monitor) Identity() Identity {
	token, ok := m.store.Get()
	if !ok {
		return Identity{}
	}
	id, err := ParseIdentity(token)
	if err != nil {
		config.Logger.Debug("Credential is not a readable JWT:", err)
		return Identity{}
	}
	return id
}

// Expire handles an authentication failure reported by the server.
func (m *Monitor) Expire() {
	config.Logger.Warn("Session expired, clearing credential")
	m.clearAndNavigate()
}

// Logout ends the session on user request.
func (m *Monitor) Logout() {
	config.Logger.Info("Logging out")
	m.clearAndNavigate()
}

// Guard runs before an authenticated screen is shown. It is advisory; the
// request pipeline's 401 handling is what actually enforces the session.
func (m *Monitor) Guard() bool {
	if m.Authenticated() {
		return true
	}
	m.navigate()
	return false
}

func (m *Monitor) clearAndNavigate() {
	if err := m.store.Clear(); err != nil {
		config.Logger.Error("Failed to clear credential:", err)
	}
	m.navigate()
}

func (m *Monitor) navigate() {
	m.mu.RLock()
	fn := m.onExpire
	m.mu.RUnlock()
	if fn != nil {
		fn()
	}
}
