package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"miniblog/internal/captcha"
	"miniblog/internal/session"
)

func TestCaptchaImage(t *testing.T) {
	sessions := session.NewManager(newMemStore(), "test-secret")
	h := NewCaptchaHandler(captcha.NewImageGenerator(), sessions)

	w := httptest.NewRecorder()
	h.Image(w, httptest.NewRequest(http.MethodGet, "/captcha/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получен %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Fatalf("ожидался image/jpeg, получен %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte{0xFF, 0xD8}) {
		t.Fatal("тело ответа не похоже на JPEG")
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != session.CookieName {
		t.Fatalf("ожидалась cookie сессии, получено %+v", cookies)
	}

	sid, ok := sessions.Verify(cookies[0].Value)
	if !ok {
		t.Fatal("cookie не прошла проверку подписи")
	}

	st, err := sessions.State(context.Background(), sid)
	if err != nil {
		t.Fatalf("ошибка чтения сессии: %v", err)
	}
	if len(st.Captcha) != 5 {
		t.Fatalf("в сессии ожидалась проверочная строка из 5 цифр, получено %q", st.Captcha)
	}
	for _, c := range st.Captcha {
		if c < '0' || c > '9' {
			t.Fatalf("проверочная строка должна состоять из цифр: %q", st.Captcha)
		}
	}
}
