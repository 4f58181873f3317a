package middleware

import (
	"context"
	"net/http"
	"net/url"

	"miniblog/internal/logger"
	"miniblog/internal/session"
	helpers "miniblog/internal/utils/helpres"

	"go.uber.org/zap"
)

// SessionReader — то, что нужно гейту от менеджера сессий.
type SessionReader interface {
	Load(ctx context.Context, r *http.Request) (*session.State, string, error)
}

// SessionGate пропускает только аутентифицированные сессии. Запрос без
// маркера пользователя перенаправляется на логин; исходный URL кладётся
// в параметр next, чтобы после входа вернуть пользователя обратно.
func SessionGate(sessions SessionReader, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st, sid, err := sessions.Load(r.Context(), r)
		if err != nil {
			logger.Log.Error("SessionGate: ошибка чтения сессии", zap.Error(err))
			helpers.Error(w, http.StatusInternalServerError, "Ошибка сессии")
			return
		}

		if st.User == "" {
			logger.Log.Debug("SessionGate: нет маркера пользователя",
				zap.String("path", r.URL.Path))
			http.Redirect(w, r, "/login/?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), ContextAccount, st.User)
		ctx = context.WithValue(ctx, ContextSessionID, sid)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
