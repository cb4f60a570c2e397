// Package auth abstracts the identity provider. The sync core only needs an
// opaque current user id and a stream of sign-in/sign-out changes; concrete
// federated providers live behind this interface.
package auth

import "sync"

// Change is one auth-state transition. UserID is empty when signed out.
type Change struct {
	UserID   string
	SignedIn bool
}

type Provider interface {
	// CurrentUserID returns the signed-in user id, or false when signed out.
	CurrentUserID() (string, bool)

	// ObserveAuthChanges returns a stream of sign-in/sign-out events.
	ObserveAuthChanges() <-chan Change

	// SignOut ends the current session.
	SignOut() error
}

// LocalProvider is a single-user identity for local storage backends: the
// user id comes from configuration and stays signed in until SignOut.
type LocalProvider struct {
	mu        sync.Mutex
	userID    string
	signedIn  bool
	observers []chan Change
}

func NewLocalProvider(userID string) *LocalProvider {
	return &LocalProvider{
		userID:   userID,
		signedIn: true,
	}
}

func (p *LocalProvider) CurrentUserID() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.signedIn {
		return "", false
	}
	return p.userID, true
}

func (p *LocalProvider) ObserveAuthChanges() <-chan Change {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan Change, 1)
	// Observers receive the current state immediately, then every change.
	if p.signedIn {
		ch <- Change{UserID: p.userID, SignedIn: true}
	} else {
		ch <- Change{}
	}
	p.observers = append(p.observers, ch)
	return ch
}

func (p *LocalProvider) SignOut() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.signedIn {
		return nil
	}
	p.signedIn = false
	p.notify(Change{})
	return nil
}

// SignIn restores the configured identity (the local provider has no
// credential exchange).
func (p *LocalProvider) SignIn() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.signedIn {
		return
	}
	p.signedIn = true
	p.notify(Change{UserID: p.userID, SignedIn: true})
}

func (p *LocalProvider) notify(change Change) {
	for _, ch := range p.observers {
		select {
		case ch <- change:
		default:
			// Slow observers drop intermediate transitions; they converge
			// on the next event they do receive.
		}
	}
}
