package auth

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/supabase-community/gotrue-go"
)

// Session — активная сессия пользователя в рамках одного чата
type Session struct {
	UserID      string
	Email       string
	AccessToken string
	SignedInAt  time.Time
}

// Listener получает идентификатор пользователя при входе и пустую строку
// при выходе. Сторы подписываются один раз при старте.
type Listener func(chatID int64, userID string)

// Hub отслеживает сессии чатов и раздает события входа/выхода
type Hub struct {
	client gotrue.Client

	mu        sync.RWMutex
	sessions  map[int64]*Session
	listeners []Listener
}

func NewHub(supabaseURL, anonKey string) *Hub {
	// reference в New не используется: адрес gotrue задается явно от SUPABASE_URL
	client := gotrue.New("project", anonKey).
		WithCustomGoTrueURL(strings.TrimRight(supabaseURL, "/") + "/auth/v1")
	return &Hub{
		client:   client,
		sessions: make(map[int64]*Session),
	}
}

// Watch регистрирует слушателя событий сессии
func (h *Hub) Watch(l Listener) {
	h.mu.Lock()
	h.listeners = append(h.listeners, l)
	h.mu.Unlock()
}

// SignIn выполняет парольный вход и привязывает сессию к чату.
// Предыдущая сессия чата, если была, замещается.
func (h *Hub) SignIn(chatID int64, email, password string) (*Session, error) {
	resp, err := h.client.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("не удалось войти: %w", err)
	}

	session := &Session{
		UserID:      resp.User.ID.String(),
		Email:       resp.User.Email,
		AccessToken: resp.AccessToken,
		SignedInAt:  time.Now(),
	}

	h.mu.Lock()
	h.sessions[chatID] = session
	listeners := append([]Listener(nil), h.listeners...)
	h.mu.Unlock()

	for _, l := range listeners {
		l(chatID, session.UserID)
	}
	return session, nil
}

// SignOut завершает сессию чата. Слушатели получают пустой идентификатор —
// сторы по нему очищаются и гасят подписки.
func (h *Hub) SignOut(chatID int64) {
	h.mu.Lock()
	_, ok := h.sessions[chatID]
	delete(h.sessions, chatID)
	listeners := append([]Listener(nil), h.listeners...)
	h.mu.Unlock()

	if !ok {
		return
	}
	for _, l := range listeners {
		l(chatID, "")
	}
}

// Session возвращает сессию чата, если она есть
func (h *Hub) Session(chatID int64) (*Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[chatID]
	return s, ok
}

// ActiveSessions — снимок чатов с активными сессиями
func (h *Hub) ActiveSessions() map[int64]string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[int64]string, len(h.sessions))
	for chatID, s := range h.sessions {
		out[chatID] = s.UserID
	}
	return out
}
