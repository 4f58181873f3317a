package handlers

import (
	"net/http"

	"miniblog/internal/captcha"
	"miniblog/internal/logger"
	"miniblog/internal/session"
	helpers "miniblog/internal/utils/helpres"

	"go.uber.org/zap"
)

type CaptchaHandler struct {
	gen      captcha.Generator
	sessions *session.Manager
}

func NewCaptchaHandler(gen captcha.Generator, sessions *session.Manager) *CaptchaHandler {
	return &CaptchaHandler{gen: gen, sessions: sessions}
}

// Image godoc
// @Summary Картинка капчи; проверочная строка кладётся в сессию
// @Tags auth
// @Produce jpeg
// @Success 200 {file} file
// @Router /captcha/ [get]
func (h *CaptchaHandler) Image(w http.ResponseWriter, r *http.Request) {
	answer, img, err := h.gen.Generate()
	if err != nil {
		logger.Log.Error("Ошибка генерации капчи", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка генерации капчи")
		return
	}

	sid := h.sessions.Ensure(w, r)
	st, err := h.sessions.State(r.Context(), sid)
	if err != nil {
		logger.Log.Error("Ошибка чтения сессии для капчи", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка сессии")
		return
	}

	st.Captcha = answer
	if err := h.sessions.Save(r.Context(), sid, st); err != nil {
		logger.Log.Error("Ошибка сохранения капчи в сессии", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка сессии")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	_, _ = w.Write(img)
}
