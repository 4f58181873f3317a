package app

import (
	"miniblog/internal/captcha"
	"miniblog/internal/config"
	"miniblog/internal/db"
	"miniblog/internal/handlers"
	"miniblog/internal/repository"
	"miniblog/internal/routes"
	"miniblog/internal/services"
	"miniblog/internal/session"
	"miniblog/migrations"

	"github.com/gorilla/mux"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	// Миграции — через database/sql-хендл, после чего он больше не нужен
	sqlDB, err := db.NewSQLConnection(cfg)
	if err != nil {
		return nil, err
	}
	if err := migrations.Migrate(sqlDB); err != nil {
		return nil, err
	}
	_ = sqlDB.Close()

	rdb, err := db.NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	// Репозитории
	userRepo := repository.NewUserRepository(conn)
	articleRepo := repository.NewArticleRepo(conn)

	// Сессии
	sessions := session.NewManager(session.NewRedisStore(rdb), cfg.SessionSecret)

	// Сервисы
	authService := services.NewAuthService(userRepo)
	blogService := services.NewBlogService(articleRepo, userRepo)
	uploadService := services.NewUploadService(cfg.UploadDir)

	// Хендлеры
	authHandler := handlers.NewAuthHandler(authService, sessions)
	blogHandler := handlers.NewBlogHandler(blogService, uploadService, sessions)
	captchaHandler := handlers.NewCaptchaHandler(captcha.NewImageGenerator(), sessions)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, sessions, authHandler, blogHandler, captchaHandler)

	return router, nil
}
