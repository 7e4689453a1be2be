package viewmodel

import (
	"clementus360/taskai/api"
	"clementus360/taskai/config"
	"clementus360/taskai/session"
	"clementus360/taskai/types"
	"context"
	"fmt"
	"strings"
	"sync"
)

// AuthGateway is the authentication capability used by AuthForm.
type AuthGateway interface {
	Register(ctx context.Context, email, password string) (types.TokenResponse, error)
	Login(ctx context.Context, email, password string) (types.TokenResponse, error)
}

// AuthForm drives sign-in and sign-up. On success it stores the credential;
// the gateway itself never does.
type AuthForm struct {
	gw    AuthGateway
	store session.Store

	mu         sync.Mutex
	submitting bool
	err        string
	notice     string
}

func NewAuthForm(gw AuthGateway, store session.Store) *AuthForm {
	return &AuthForm{gw: gw, store: store}
}

func (f *AuthForm) Login(ctx context.Context, email, password string) error {
	email, ok := f.begin(email, password)
	if !ok {
		return ErrCredentialsRequired
	}

	resp, err := f.gw.Login(ctx, email, password)
	if err == nil {
		err = f.store.Set(resp.AccessToken)
	}
	return f.finish(err, config.MsgLoginFailed, "")
}

// Register creates an account. When the server answers with a token the
// user is signed in straight away and signedIn is true; otherwise a notice
// asks them to sign in.
func (f *AuthForm) Register(ctx context.Context, email, password string) (signedIn bool, err error) {
	email, ok := f.begin(email, password)
	if !ok {
		return false, ErrCredentialsRequired
	}

	resp, err := f.gw.Register(ctx, email, password)
	if err == nil && resp.AccessToken != "" {
		if err = f.store.Set(resp.AccessToken); err == nil {
			signedIn = true
		}
	}

	notice := ""
	if !signedIn {
		notice = config.MsgRegistered
	}
	return signedIn, f.finish(err, config.MsgRegisterFailed, notice)
}

func (f *AuthForm) begin(email, password string) (string, bool) {
	email = strings.TrimSpace(email)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.notice = ""
	if email == "" || password == "" {
		f.err = config.MsgCredentialsNeeded
		return email, false
	}
	f.err = ""
	f.submitting = true
	return email, true
}

func (f *AuthForm) finish(err error, fallback, notice string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		config.Logger.Error("Authentication failed:", err)
		f.err = api.UserMessage(err, fallback)
		return fmt.Errorf("authenticate: %w", err)
	}
	f.notice = notice
	return nil
}

func (f *AuthForm) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

func (f *AuthForm) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *AuthForm) Notice() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notice
}
