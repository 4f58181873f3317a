package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"miniblog/internal/logger"
	"miniblog/internal/models"
	"miniblog/internal/utils"

	"go.uber.org/zap"
)

type AuthService struct {
	repo UserRepo
}

func NewAuthService(repo UserRepo) *AuthService {
	return &AuthService{repo: repo}
}

type UserRepo interface {
	IsAccountTaken(ctx context.Context, account string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	GetByAccount(ctx context.Context, account string) (*models.User, error)
}

func (s *AuthService) Register(ctx context.Context, account, password string) (*models.User, error) {
	account = strings.TrimSpace(account)
	logger.Log.Info("Регистрация пользователя (service)", zap.String("account", account))

	if l := utf8.RuneCountInString(account); l < 3 || l > 64 {
		err := errors.New("длина логина должна быть от 3 до 64 символов")
		logger.Log.Warn("Валидация не пройдена: логин", zap.Int("runes", l), zap.Error(err))
		return nil, err
	}
	// верхняя граница — ограничение bcrypt
	if l := len(password); l < 6 || l > 72 {
		err := errors.New("длина пароля должна быть от 6 до 72 символов")
		logger.Log.Warn("Валидация не пройдена: пароль", zap.Error(err))
		return nil, err
	}

	if exists, err := s.repo.IsAccountTaken(ctx, account); exists || err != nil {
		if err != nil {
			logger.Log.Error("Ошибка проверки account", zap.Error(err))
			return nil, err
		}
		return nil, errors.New("имя пользователя уже занято")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Ошибка хеширования пароля", zap.Error(err))
		return nil, err
	}

	user := &models.User{
		Account:      account,
		PasswordHash: hashed,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		logger.Log.Error("Ошибка создания пользователя", zap.Error(err))
		return nil, err
	}
	logger.Log.Info("Пользователь зарегистрирован (service)", zap.String("account", account))
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, account, password string) (*models.User, error) {
	logger.Log.Info("Попытка входа (service)", zap.String("account", account))
	user, err := s.repo.GetByAccount(ctx, account)
	if err != nil {
		logger.Log.Warn("Пользователь не найден (service)", zap.String("account", account), zap.Error(err))
		return nil, errors.New("пользователь не найден")
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Log.Warn("Неверный пароль (service)", zap.String("account", account))
		return nil, errors.New("неверный пароль")
	}

	logger.Log.Info("Вход выполнен (service)", zap.String("account", account))
	return user, nil
}
