package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"miniblog/internal/logger"
	"miniblog/internal/middleware"
	"miniblog/internal/models"
	"miniblog/internal/services"
	"miniblog/internal/session"
	helpers "miniblog/internal/utils/helpres"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type BlogHandler struct {
	blog     *services.BlogService
	uploads  *services.UploadService
	sessions *session.Manager
}

func NewBlogHandler(blog *services.BlogService, uploads *services.UploadService, sessions *session.Manager) *BlogHandler {
	return &BlogHandler{
		blog:     blog,
		uploads:  uploads,
		sessions: sessions,
	}
}

// AddPage godoc
// @Summary Контекст формы публикации (рубрики, flash-сообщения)
// @Tags blog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /blog/add/ [get]
func (h *BlogHandler) AddPage(w http.ResponseWriter, r *http.Request) {
	flashes := h.popFlashes(r)
	helpers.JSON(w, http.StatusOK, map[string]interface{}{
		"categories": models.Categories,
		"flashes":    flashes,
	})
}

// Add godoc
// @Summary Публикация статьи
// @Tags blog
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Заголовок"
// @Param category formData int true "Рубрика (1..3)"
// @Param content formData string true "Текст статьи"
// @Param cover formData file true "Файл обложки"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {string} string "Ошибка валидации"
// @Router /blog/add/ [post]
func (h *BlogHandler) Add(w http.ResponseWriter, r *http.Request) {
	account, _ := r.Context().Value(middleware.ContextAccount).(string)
	logger.Log.Info("Запрос на публикацию статьи", zap.String("account", account))

	form, ok := h.parseArticleForm(w, r)
	if !ok {
		return
	}

	article, err := h.blog.Publish(r.Context(), account, form)
	if err != nil {
		h.writeBlogError(w, err)
		return
	}

	h.flash(w, r, "Статья опубликована", "ok")

	// форма отдаётся заново с чистыми полями и уведомлением — редиректа нет
	helpers.JSON(w, http.StatusOK, map[string]interface{}{
		"article":    article,
		"categories": models.Categories,
		"flashes":    h.popFlashes(r),
	})
}

// EditPage godoc
// @Summary Статья для предзаполнения формы редактирования
// @Tags blog
// @Produce json
// @Param id path int true "ID статьи"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {string} string "Статья не найдена"
// @Router /blog/edit/{id}/ [get]
func (h *BlogHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	account, _ := r.Context().Value(middleware.ContextAccount).(string)
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}

	article, err := h.blog.Get(r.Context(), account, id)
	if err != nil {
		h.writeBlogError(w, err)
		return
	}

	helpers.JSON(w, http.StatusOK, map[string]interface{}{
		"article":    article,
		"categories": models.Categories,
	})
}

// Edit godoc
// @Summary Редактирование статьи (полная перезапись, обложка загружается заново)
// @Tags blog
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID статьи"
// @Param title formData string true "Заголовок"
// @Param category formData int true "Рубрика (1..3)"
// @Param content formData string true "Текст статьи"
// @Param cover formData file true "Файл обложки"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {string} string "Статья не найдена"
// @Router /blog/edit/{id}/ [post]
func (h *BlogHandler) Edit(w http.ResponseWriter, r *http.Request) {
	account, _ := r.Context().Value(middleware.ContextAccount).(string)
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}
	logger.Log.Info("Запрос на редактирование статьи", zap.Int("id", id), zap.String("account", account))

	form, ok := h.parseArticleForm(w, r)
	if !ok {
		return
	}

	article, err := h.blog.Edit(r.Context(), account, id, form)
	if err != nil {
		h.writeBlogError(w, err)
		return
	}

	h.flash(w, r, "Статья обновлена", "ok")

	helpers.JSON(w, http.StatusOK, map[string]interface{}{
		"article":    article,
		"categories": models.Categories,
		"flashes":    h.popFlashes(r),
	})
}

// List godoc
// @Summary Список статей текущего автора (по одной на страницу)
// @Tags blog
// @Produce json
// @Param page path int true "Номер страницы (с 1)"
// @Success 200 {object} map[string]interface{}
// @Router /blog/list/{page}/ [get]
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	account, _ := r.Context().Value(middleware.ContextAccount).(string)
	page, err := strconv.Atoi(mux.Vars(r)["page"])
	if err != nil || page < 1 {
		page = 1
	}

	list, pages, err := h.blog.List(r.Context(), account, page)
	if err != nil {
		h.writeBlogError(w, err)
		return
	}

	flashes := h.popFlashes(r)

	helpers.JSON(w, http.StatusOK, map[string]interface{}{
		"data":       list,
		"page":       page,
		"pages":      pages,
		"categories": models.Categories,
		"flashes":    flashes,
	})
}

// Delete godoc
// @Summary Удаление статьи
// @Tags blog
// @Param id path int true "ID статьи"
// @Success 302 {string} string "Переход к списку статей"
// @Failure 404 {string} string "Статья не найдена"
// @Router /blog/del/{id}/ [get]
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	account, _ := r.Context().Value(middleware.ContextAccount).(string)
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}
	logger.Log.Info("Запрос на удаление статьи", zap.Int("id", id), zap.String("account", account))

	title, err := h.blog.Delete(r.Context(), account, id)
	if err != nil {
		h.writeBlogError(w, err)
		return
	}

	h.flash(w, r, fmt.Sprintf("Статья «%s» удалена", title), "ok")
	http.Redirect(w, r, "/blog/list/1/", http.StatusFound)
}

// parseArticleForm разбирает multipart-форму и собирает ArticleForm.
// Поля валидируются до записи обложки, чтобы невалидная форма не оставляла
// на диске файл-сироту. При ошибке сам пишет ответ и возвращает ok=false.
func (h *BlogHandler) parseArticleForm(w http.ResponseWriter, r *http.Request) (models.ArticleForm, bool) {
	var form models.ArticleForm

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		logger.Log.Warn("Ошибка разбора формы статьи", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Ошибка разбора формы")
		return form, false
	}

	category, err := strconv.Atoi(r.FormValue("category"))
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидная рубрика")
		return form, false
	}

	form.Title = r.FormValue("title")
	form.Category = category
	form.Content = r.FormValue("content")

	if err := services.ValidateArticleFields(form.Title, form.Category, form.Content); err != nil {
		logger.Log.Warn("Валидация формы статьи не пройдена", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return form, false
	}

	file, header, err := r.FormFile("cover")
	if err != nil {
		logger.Log.Warn("Обложка не найдена в форме", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Обложка не загружена")
		return form, false
	}
	defer file.Close()

	cover, err := h.uploads.SaveCover(file, header.Filename)
	if err != nil {
		helpers.Error(w, http.StatusInternalServerError, "Ошибка при сохранении файла")
		return form, false
	}

	form.Cover = cover
	return form, true
}

func (h *BlogHandler) writeBlogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		helpers.Error(w, http.StatusNotFound, "Статья не найдена")
	case errors.Is(err, services.ErrAuthorNotFound):
		helpers.Error(w, http.StatusUnauthorized, "Автор не найден")
	default:
		helpers.Error(w, http.StatusBadRequest, err.Error())
	}
}

// flash добавляет транзитное уведомление в сессию текущего запроса.
func (h *BlogHandler) flash(w http.ResponseWriter, r *http.Request, message, category string) {
	sid, _ := r.Context().Value(middleware.ContextSessionID).(string)
	if sid == "" {
		sid = h.sessions.Ensure(w, r)
	}
	st, err := h.sessions.State(r.Context(), sid)
	if err != nil {
		logger.Log.Error("Ошибка чтения сессии для flash", zap.Error(err))
		return
	}
	st.AddFlash(message, category)
	if err := h.sessions.Save(r.Context(), sid, st); err != nil {
		logger.Log.Error("Ошибка сохранения flash", zap.Error(err))
	}
}

func (h *BlogHandler) popFlashes(r *http.Request) []session.Flash {
	sid, _ := r.Context().Value(middleware.ContextSessionID).(string)
	if sid == "" {
		return nil
	}
	st, err := h.sessions.State(r.Context(), sid)
	if err != nil {
		logger.Log.Error("Ошибка чтения flash", zap.Error(err))
		return nil
	}
	flashes := st.PopFlashes()
	if len(flashes) > 0 {
		if err := h.sessions.Save(r.Context(), sid, st); err != nil {
			logger.Log.Error("Ошибка сохранения сессии после чтения flash", zap.Error(err))
		}
	}
	return flashes
}
