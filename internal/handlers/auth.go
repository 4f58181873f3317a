package handlers

import (
	"net/http"
	"strings"

	"miniblog/internal/logger"
	"miniblog/internal/middleware"
	"miniblog/internal/services"
	"miniblog/internal/session"
	helpers "miniblog/internal/utils/helpres"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
	sessions    *session.Manager
}

func NewAuthHandler(authService *services.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// Index godoc
// @Summary Корень сайта
// @Tags auth
// @Success 302 {string} string "Переход на страницу входа"
// @Router / [get]
func (h *AuthHandler) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login/", http.StatusFound)
}

// LoginPage godoc
// @Summary Контекст страницы входа (flash-сообщения)
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /login/ [get]
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.pageContext(w, r)
}

// Login godoc
// @Summary Вход пользователя
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param account formData string true "Логин"
// @Param pwd formData string true "Пароль"
// @Success 302 {string} string "Переход к списку статей"
// @Failure 401 {string} string "Неверный логин или пароль"
// @Router /login/ [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		logger.Log.Warn("Ошибка разбора формы в Login", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидная форма")
		return
	}

	account := strings.TrimSpace(r.FormValue("account"))
	password := r.FormValue("pwd")

	user, err := h.authService.Login(r.Context(), account, password)
	if err != nil {
		logger.Log.Warn("Ошибка входа пользователя", zap.String("account", account), zap.Error(err))
		helpers.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	sid := h.sessions.Ensure(w, r)
	st, err := h.sessions.State(r.Context(), sid)
	if err != nil {
		logger.Log.Error("Ошибка чтения сессии в Login", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка сессии")
		return
	}

	st.User = user.Account
	st.AddFlash("Вход выполнен", "ok")
	if err := h.sessions.Save(r.Context(), sid, st); err != nil {
		logger.Log.Error("Ошибка сохранения сессии в Login", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка сессии")
		return
	}

	logger.Log.Info("Вход выполнен", zap.String("account", user.Account))
	http.Redirect(w, r, nextTarget(r), http.StatusFound)
}

// nextTarget возвращает адрес возврата после входа. Принимаются только
// относительные пути — защита от открытого редиректа.
func nextTarget(r *http.Request) string {
	next := r.FormValue("next")
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/blog/list/1/"
}

// RegisterPage godoc
// @Summary Контекст страницы регистрации (flash-сообщения)
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /register/ [get]
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.pageContext(w, r)
}

// Register godoc
// @Summary Регистрация нового пользователя
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param account formData string true "Логин"
// @Param pwd formData string true "Пароль"
// @Param pwd2 formData string true "Повтор пароля"
// @Success 302 {string} string "Переход на страницу входа"
// @Failure 400 {string} string "Ошибка валидации"
// @Router /register/ [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		logger.Log.Warn("Ошибка разбора формы в Register", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидная форма")
		return
	}

	account := strings.TrimSpace(r.FormValue("account"))
	password := r.FormValue("pwd")
	password2 := r.FormValue("pwd2")

	logger.Log.Info("Регистрация пользователя", zap.String("account", account))

	if password != password2 {
		helpers.Error(w, http.StatusBadRequest, "Пароли не совпадают")
		return
	}

	if _, err := h.authService.Register(r.Context(), account, password); err != nil {
		logger.Log.Error("Ошибка регистрации пользователя", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	sid := h.sessions.Ensure(w, r)
	if st, err := h.sessions.State(r.Context(), sid); err == nil {
		st.AddFlash("Регистрация выполнена, войдите", "ok")
		_ = h.sessions.Save(r.Context(), sid, st)
	}

	http.Redirect(w, r, "/login/", http.StatusFound)
}

// Logout godoc
// @Summary Выход (снятие маркера пользователя с сессии)
// @Tags auth
// @Success 302 {string} string "Переход на страницу входа"
// @Router /logout/ [get]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sid, _ := r.Context().Value(middleware.ContextSessionID).(string)
	account, _ := r.Context().Value(middleware.ContextAccount).(string)

	st, err := h.sessions.State(r.Context(), sid)
	if err != nil {
		logger.Log.Error("Ошибка чтения сессии в Logout", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка сессии")
		return
	}

	st.User = ""
	if err := h.sessions.Save(r.Context(), sid, st); err != nil {
		logger.Log.Error("Ошибка сохранения сессии в Logout", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка сессии")
		return
	}

	logger.Log.Info("Пользователь вышел", zap.String("account", account))
	http.Redirect(w, r, "/login/", http.StatusFound)
}

// pageContext отдаёт накопленные flash-сообщения (однократное чтение).
func (h *AuthHandler) pageContext(w http.ResponseWriter, r *http.Request) {
	st, sid, err := h.sessions.Load(r.Context(), r)
	if err != nil {
		logger.Log.Error("Ошибка чтения сессии", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка сессии")
		return
	}

	flashes := st.PopFlashes()
	if sid != "" && len(flashes) > 0 {
		if err := h.sessions.Save(r.Context(), sid, st); err != nil {
			logger.Log.Error("Ошибка сохранения сессии", zap.Error(err))
		}
	}

	helpers.JSON(w, http.StatusOK, map[string]interface{}{
		"flashes": flashes,
	})
}
