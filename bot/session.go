package bot

import (
	"sync"

	"github.com/rs-sku/shop-tg-bot/models"
)

// State of a per-chat conversation. A chat with no session record is Idle.
type State int

const (
	StateIdle State = iota
	StateAwaitingQuantity
	StateAwaitingContacts
	StateAwaitingApproval
)

// Session is the single pending-flow slot of one chat. It is overwritten or
// cleared, never stacked: every terminal transition clears it so stale
// pending data cannot leak into a later flow.
type Session struct {
	State        State
	ItemID       uint                // pending item for a quantity change
	DeliveryType models.DeliveryType // pending choice awaiting approval
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[int64]Session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[int64]Session)}
}

func (s *sessionStore) get(chatID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[chatID]
}

func (s *sessionStore) set(chatID int64, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[chatID] = sess
}

func (s *sessionStore) clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}
