package middleware

type ContextKey string

const (
	// ContextAccount — логин пользователя текущей сессии.
	ContextAccount ContextKey = "account"
	// ContextSessionID — идентификатор сессии (для чтения/записи flash).
	ContextSessionID ContextKey = "session_id"
)
