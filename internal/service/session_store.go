package service

import (
	"sync"

	"github.com/mad69sparco-cmd/Reservo/internal/model"
)

// SessionStore хранит состояние диалогов пользователей в памяти процесса.
// Сессия создается лениво при первом событии от пользователя и живет до
// перезапуска процесса. Сама сессия не рассчитана на конкурентный доступ:
// порядок событий одного пользователя обеспечивает диспетчер транспорта.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*model.Session
}

// NewSessionStore создает новое хранилище сессий.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*model.Session)}
}

// Get возвращает сессию пользователя, создавая ее при необходимости.
func (s *SessionStore) Get(userID int64) *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &model.Session{UserID: userID, State: model.StateIdle}
		s.sessions[userID] = sess
	}
	return sess
}

// Len возвращает количество активных сессий.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
