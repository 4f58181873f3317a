package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"miniblog/internal/middleware"
	"miniblog/internal/models"
	"miniblog/internal/services"
	"miniblog/internal/session"
	helpers "miniblog/internal/utils/helpres"

	"github.com/jackc/pgx/v5"
)

// Хранилище сессий в памяти
type memStore struct {
	data map[string]*session.State
}

func newMemStore() *memStore { return &memStore{data: make(map[string]*session.State)} }

func (m *memStore) Load(_ context.Context, sid string) (*session.State, error) {
	if st, ok := m.data[sid]; ok {
		cp := *st
		return &cp, nil
	}
	return &session.State{}, nil
}

func (m *memStore) Save(_ context.Context, sid string, st *session.State) error {
	cp := *st
	m.data[sid] = &cp
	return nil
}

func (m *memStore) Delete(_ context.Context, sid string) error {
	delete(m.data, sid)
	return nil
}

// Заглушки репозиториев
type stubArticleRepo struct {
	articles map[int]*models.Article
	nextID   int
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{articles: make(map[int]*models.Article)}
}

func (s *stubArticleRepo) Create(_ context.Context, a *models.Article) (*models.Article, error) {
	s.nextID++
	out := *a
	out.ID = s.nextID
	s.articles[out.ID] = &out
	return &out, nil
}

func (s *stubArticleRepo) GetByID(_ context.Context, id int) (*models.Article, error) {
	a, ok := s.articles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := *a
	return &out, nil
}

func (s *stubArticleRepo) Update(_ context.Context, a *models.Article) error {
	stored, ok := s.articles[a.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	*stored = *a
	return nil
}

func (s *stubArticleRepo) Delete(_ context.Context, id int) error {
	delete(s.articles, id)
	return nil
}

func (s *stubArticleRepo) ListByAuthor(_ context.Context, authorID, limit, offset int) ([]*models.Article, error) {
	var list []*models.Article
	for _, a := range s.articles {
		if a.AuthorID == authorID {
			list = append(list, a)
		}
	}
	return list, nil
}

func (s *stubArticleRepo) CountByAuthor(_ context.Context, authorID int) (int, error) {
	n := 0
	for _, a := range s.articles {
		if a.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

type stubAuthorRepo struct{}

func (stubAuthorRepo) GetByAccount(_ context.Context, account string) (*models.User, error) {
	if account != "alice" {
		return nil, errors.New("not found")
	}
	return &models.User{ID: 1, Account: "alice"}, nil
}

func newBlogHandlerFixture(t *testing.T) (*BlogHandler, *session.Manager, string) {
	t.Helper()
	uploadDir := t.TempDir()
	sessions := session.NewManager(newMemStore(), "test-secret")
	blog := services.NewBlogService(newStubArticleRepo(), stubAuthorRepo{})
	uploads := services.NewUploadService(uploadDir)
	return NewBlogHandler(blog, uploads, sessions), sessions, uploadDir
}

// articleFormRequest собирает multipart-запрос публикации с обложкой и
// контекстом аутентифицированной сессии.
func articleFormRequest(t *testing.T, target, title, category, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, value := range map[string]string{
		"title":    title,
		"category": category,
		"content":  content,
	} {
		if err := mw.WriteField(field, value); err != nil {
			t.Fatalf("ошибка сборки формы: %v", err)
		}
	}
	fw, err := mw.CreateFormFile("cover", "cover.png")
	if err != nil {
		t.Fatalf("ошибка сборки формы: %v", err)
	}
	if _, err := fw.Write([]byte("png-bytes")); err != nil {
		t.Fatalf("ошибка сборки формы: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("ошибка сборки формы: %v", err)
	}

	r := httptest.NewRequest(http.MethodPost, target, &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	ctx := context.WithValue(r.Context(), middleware.ContextAccount, "alice")
	ctx = context.WithValue(ctx, middleware.ContextSessionID, "sid-1")
	return r.WithContext(ctx)
}

func TestAdd_ResponseCarriesFlash(t *testing.T) {
	h, _, _ := newBlogHandlerFixture(t)

	w := httptest.NewRecorder()
	h.Add(w, articleFormRequest(t, "/blog/add/", "Hello", "1", "world"))

	if w.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получен %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Flashes []session.Flash `json:"flashes"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("ошибка разбора ответа: %v", err)
	}
	if len(resp.Data.Flashes) != 1 || resp.Data.Flashes[0].Message != "Статья опубликована" {
		t.Fatalf("в ответе ожидалось уведомление о публикации, получено %+v", resp.Data.Flashes)
	}
}

func TestAdd_FlashNotRepeatedOnNextPage(t *testing.T) {
	h, sessions, _ := newBlogHandlerFixture(t)

	w := httptest.NewRecorder()
	h.Add(w, articleFormRequest(t, "/blog/add/", "Hello", "1", "world"))
	if w.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получен %d", w.Code)
	}

	st, err := sessions.State(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("ошибка чтения сессии: %v", err)
	}
	if len(st.Flashes) != 0 {
		t.Fatalf("уведомление показано в ответе и не должно остаться в сессии: %+v", st.Flashes)
	}
}

func TestAdd_InvalidFormLeavesNoUpload(t *testing.T) {
	h, _, uploadDir := newBlogHandlerFixture(t)

	w := httptest.NewRecorder()
	h.Add(w, articleFormRequest(t, "/blog/add/", "Hello", "42", "world"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("ожидался 400, получен %d", w.Code)
	}

	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		t.Fatalf("ошибка чтения каталога загрузок: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("невалидная форма не должна оставлять файлы, найдено %d", len(entries))
	}

	var resp helpers.Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("ошибка разбора ответа: %v", err)
	}
	if resp.Error == "" {
		t.Fatal("в конверте ожидалось сообщение об ошибке")
	}
}

func TestAdd_EmptyTitleLeavesNoUpload(t *testing.T) {
	h, _, uploadDir := newBlogHandlerFixture(t)

	w := httptest.NewRecorder()
	h.Add(w, articleFormRequest(t, "/blog/add/", "   ", "1", "world"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("ожидался 400, получен %d", w.Code)
	}
	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		t.Fatalf("ошибка чтения каталога загрузок: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("невалидная форма не должна оставлять файлы, найдено %d", len(entries))
	}
}
