package repository

import (
	"context"

	"miniblog/internal/logger"
	"miniblog/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	logger.Log.Info("Создание пользователя (repo)", zap.String("account", user.Account))
	query := `
	INSERT INTO users (account, password_hash)
	VALUES ($1, $2)
	RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		user.Account,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *UserRepository) IsAccountTaken(ctx context.Context, account string) (bool, error) {
	logger.Log.Debug("Проверка account на уникальность (repo)", zap.String("account", account))
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE account = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, account).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки account (repo)", zap.Error(err))
	}
	return exists, err
}

func (r *UserRepository) GetByAccount(ctx context.Context, account string) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по account (repo)", zap.String("account", account))
	query := `SELECT id, account, password_hash, created_at
	FROM users
	WHERE account = $1`

	var user models.User
	err := r.db.QueryRow(ctx, query, account).Scan(
		&user.ID,
		&user.Account,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		logger.Log.Error("Ошибка получения пользователя по account (repo)", zap.String("account", account), zap.Error(err))
		return nil, err
	}
	return &user, nil
}
