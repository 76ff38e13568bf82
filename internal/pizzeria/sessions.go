package pizzeria

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
)

// session is the per-caller state created by Login. Each session owns its filters.
type session struct {
	id      string
	email   string
	filters *filterEngine
}

// sessionStore keeps sessions in an expiring cache; every successful lookup
// pushes the expiry back by the TTL.
type sessionStore struct {
	ttl   time.Duration
	cache *gocache.Cache
}

func newSessionStore(ttl time.Duration) *sessionStore {
	if ttl <= 0 {
		return &sessionStore{cache: gocache.New(gocache.NoExpiration, 0)}
	}
	return &sessionStore{ttl: ttl, cache: gocache.New(ttl, 2*ttl)}
}

func (s *sessionStore) open(email string) *session {
	sess := &session{id: uuid.New().String(), email: email, filters: newFilterEngine()}
	s.cache.Set(sess.id, sess, gocache.DefaultExpiration)
	return sess
}

func (s *sessionStore) get(id string) (*session, bool) {
	value, found := s.cache.Get(id)
	if !found {
		return nil, false
	}
	sess, ok := value.(*session)
	if !ok {
		return nil, false
	}
	s.cache.Set(id, sess, gocache.DefaultExpiration)
	return sess, true
}

func (s *sessionStore) close(id string) bool {
	if _, found := s.cache.Get(id); !found {
		return false
	}
	s.cache.Delete(id)
	return true
}

func (s *sessionStore) expiresAt(now time.Time) time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(s.ttl)
}

// requireSession resolves a session id to its session and account.
// Every session-scoped operation calls it first.
func (p *Pizzeria) requireSession(sessionID string) (*session, *models.ClientAccount, error) {
	if sessionID == "" {
		return nil, nil, ErrNotConnected
	}
	sess, ok := p.sessions.get(sessionID)
	if !ok {
		return nil, nil, errors.Wrap(ErrNotConnected, "session expired or unknown")
	}
	account, ok := p.accounts[sess.email]
	if !ok {
		return nil, nil, errors.Wrap(ErrNotConnected, "session account no longer exists")
	}
	return sess, account, nil
}
