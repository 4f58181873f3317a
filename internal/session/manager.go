package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Manager связывает Store с подписанной cookie. Значение cookie —
// "<sid>.<hmac-sha256(sid)>": подделанный идентификатор отбрасывается
// ещё до похода в хранилище.
type Manager struct {
	store  Store
	secret []byte
}

func NewManager(store Store, secret string) *Manager {
	return &Manager{store: store, secret: []byte(secret)}
}

func (m *Manager) sign(sid string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(sid))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify разбирает значение cookie и проверяет подпись.
func (m *Manager) Verify(value string) (string, bool) {
	sid, sig, ok := strings.Cut(value, ".")
	if !ok || sid == "" {
		return "", false
	}
	expected := m.sign(sid)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", false
	}
	return sid, true
}

// SessionID извлекает идентификатор сессии из запроса, если cookie
// присутствует и подпись верна.
func (m *Manager) SessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	return m.Verify(cookie.Value)
}

// Ensure возвращает идентификатор существующей сессии либо создаёт новую
// и выставляет cookie.
func (m *Manager) Ensure(w http.ResponseWriter, r *http.Request) string {
	if sid, ok := m.SessionID(r); ok {
		return sid
	}
	sid := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sid + "." + m.sign(sid),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(TTL / time.Second),
	})
	return sid
}

// Load возвращает состояние сессии запроса. Если cookie нет или подпись
// неверна — пустое состояние и пустой sid.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*State, string, error) {
	sid, ok := m.SessionID(r)
	if !ok {
		return &State{}, "", nil
	}
	st, err := m.store.Load(ctx, sid)
	if err != nil {
		return nil, "", err
	}
	return st, sid, nil
}

// State загружает состояние по известному sid (например, только что
// созданному через Ensure, когда cookie в запросе ещё нет).
func (m *Manager) State(ctx context.Context, sid string) (*State, error) {
	return m.store.Load(ctx, sid)
}

func (m *Manager) Save(ctx context.Context, sid string, st *State) error {
	return m.store.Save(ctx, sid, st)
}
