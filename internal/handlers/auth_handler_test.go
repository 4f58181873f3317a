package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"miniblog/internal/logger"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	m.Run()
}

func TestNextTarget(t *testing.T) {
	const fallback = "/blog/list/1/"

	cases := []struct {
		name string
		next string
		want string
	}{
		{"пустой параметр", "", fallback},
		{"относительный путь", "/blog/list/2/", "/blog/list/2/"},
		{"абсолютный URL", "https://evil.example/phish", fallback},
		{"протокол-относительный URL", "//evil.example/phish", fallback},
		{"путь без ведущего слэша", "blog/list/2/", fallback},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/login/?next="+url.QueryEscape(tc.next), nil)
			if got := nextTarget(r); got != tc.want {
				t.Fatalf("next=%q: ожидалось %q, получено %q", tc.next, tc.want, got)
			}
		})
	}
}
