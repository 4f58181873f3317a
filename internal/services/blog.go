package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"miniblog/internal/logger"
	"miniblog/internal/models"
	"miniblog/internal/repository"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PageSize — фиксированный размер страницы списка статей.
const PageSize = 1

var (
	ErrNotFound       = errors.New("статья не найдена")
	ErrAuthorNotFound = errors.New("автор не найден")
)

// AuthorRepo — доступ к пользователям, нужный блогу для резолва автора.
type AuthorRepo interface {
	GetByAccount(ctx context.Context, account string) (*models.User, error)
}

type BlogService struct {
	repo  repository.ArticleRepo
	users AuthorRepo
}

func NewBlogService(repo repository.ArticleRepo, users AuthorRepo) *BlogService {
	return &BlogService{repo: repo, users: users}
}

func (s *BlogService) resolveAuthor(ctx context.Context, account string) (*models.User, error) {
	user, err := s.users.GetByAccount(ctx, account)
	if err != nil {
		logger.Log.Warn("Автор сессии не найден в БД (service)", zap.String("account", account), zap.Error(err))
		return nil, ErrAuthorNotFound
	}
	return user, nil
}

// ValidateArticleFields проверяет текстовые поля формы статьи. Вынесена
// отдельно, чтобы хендлер мог отсечь невалидную форму до записи обложки
// на диск.
func ValidateArticleFields(title string, category int, content string) error {
	if l := utf8.RuneCountInString(strings.TrimSpace(title)); l < 1 || l > 100 {
		return errors.New("длина заголовка должна быть от 1 до 100 символов")
	}
	if !models.IsValidCategory(category) {
		return errors.New("неизвестная рубрика")
	}
	if strings.TrimSpace(content) == "" {
		return errors.New("контент не может быть пустым")
	}
	return nil
}

func validateForm(form models.ArticleForm) error {
	if err := ValidateArticleFields(form.Title, form.Category, form.Content); err != nil {
		return err
	}
	if form.Cover == "" {
		return errors.New("обложка не загружена")
	}
	return nil
}

func (s *BlogService) Publish(ctx context.Context, account string, form models.ArticleForm) (*models.Article, error) {
	logger.Log.Info("Публикация статьи (service)",
		zap.String("account", account),
		zap.String("title", strings.TrimSpace(form.Title)),
		zap.Int("category", form.Category),
	)

	if err := validateForm(form); err != nil {
		logger.Log.Warn("Валидация не пройдена (service)", zap.Error(err))
		return nil, err
	}

	user, err := s.resolveAuthor(ctx, account)
	if err != nil {
		return nil, err
	}

	a := &models.Article{
		Title:    strings.TrimSpace(form.Title),
		Category: form.Category,
		AuthorID: user.ID,
		Cover:    form.Cover,
		Content:  form.Content,
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		logger.Log.Error("Ошибка создания статьи (repo)", zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Статья опубликована", zap.Int("id", created.ID), zap.String("title", created.Title))
	return created, nil
}

// Get возвращает статью только её автору: чужая или несуществующая статья
// неотличимы для вызывающего.
func (s *BlogService) Get(ctx context.Context, account string, id int) (*models.Article, error) {
	user, err := s.resolveAuthor(ctx, account)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Log.Warn("Статья не найдена (service)", zap.Int("id", id))
			return nil, ErrNotFound
		}
		logger.Log.Error("Ошибка получения статьи (repo)", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	if a.AuthorID != user.ID {
		logger.Log.Warn("Попытка доступа к чужой статье (service)",
			zap.Int("id", id), zap.String("account", account))
		return nil, ErrNotFound
	}
	return a, nil
}

// Edit перезаписывает все поля статьи, включая обложку — пути «оставить
// старую обложку» нет.
func (s *BlogService) Edit(ctx context.Context, account string, id int, form models.ArticleForm) (*models.Article, error) {
	logger.Log.Info("Редактирование статьи (service)", zap.Int("id", id), zap.String("account", account))

	if err := validateForm(form); err != nil {
		logger.Log.Warn("Валидация не пройдена (service)", zap.Error(err))
		return nil, err
	}

	a, err := s.Get(ctx, account, id)
	if err != nil {
		return nil, err
	}

	a.Title = strings.TrimSpace(form.Title)
	a.Category = form.Category
	a.Cover = form.Cover
	a.Content = form.Content

	if err := s.repo.Update(ctx, a); err != nil {
		logger.Log.Error("Ошибка обновления статьи (repo)", zap.Int("id", id), zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Статья обновлена", zap.Int("id", id))
	return a, nil
}

// List возвращает страницу статей автора (новые раньше) и общее число
// страниц. Страница за пределами диапазона — пустая, не ошибка.
func (s *BlogService) List(ctx context.Context, account string, page int) ([]*models.Article, int, error) {
	if page < 1 {
		page = 1
	}

	user, err := s.resolveAuthor(ctx, account)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountByAuthor(ctx, user.ID)
	if err != nil {
		logger.Log.Error("Ошибка подсчёта статей (repo)", zap.Error(err))
		return nil, 0, err
	}
	pages := (total + PageSize - 1) / PageSize

	list, err := s.repo.ListByAuthor(ctx, user.ID, PageSize, (page-1)*PageSize)
	if err != nil {
		logger.Log.Error("Ошибка получения списка статей (repo)", zap.Error(err))
		return nil, 0, err
	}

	logger.Log.Debug("Список статей получен",
		zap.String("account", account),
		zap.Int("page", page),
		zap.Int("count", len(list)),
	)
	return list, pages, nil
}

// Delete удаляет статью автора и возвращает её заголовок для уведомления.
func (s *BlogService) Delete(ctx context.Context, account string, id int) (string, error) {
	logger.Log.Info("Удаление статьи (service)", zap.Int("id", id), zap.String("account", account))

	a, err := s.Get(ctx, account, id)
	if err != nil {
		return "", err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logger.Log.Error("Ошибка удаления статьи (repo)", zap.Int("id", id), zap.Error(err))
		return "", err
	}

	logger.Log.Info("Статья удалена", zap.Int("id", id), zap.String("title", a.Title))
	return a.Title, nil
}
