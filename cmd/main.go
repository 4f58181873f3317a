package main

import (
	"net/http"

	"miniblog/internal/app"
	"miniblog/internal/config"
	"miniblog/internal/logger"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	logger.InitLogger()
	defer logger.Log.Sync()

	if err != nil {
		logger.Log.Fatal("Ошибка загрузки конфига", zap.Error(err))
	}

	warnings, err := cfg.Validate()
	if err != nil {
		logger.Log.Fatal("Невалидный конфиг", zap.Error(err))
	}
	for _, warn := range warnings {
		logger.Log.Warn(warn)
	}

	logger.Log.Info("Подключение к БД", zap.String("dsn", cfg.GetDSNSafe()))

	router, err := app.InitApp(cfg)
	if err != nil {
		logger.Log.Fatal("Ошибка инициализации приложения", zap.Error(err))
	}

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
	})

	logger.Log.Info("Сервер запущен", zap.String("port", cfg.Port))

	if err := http.ListenAndServe(":"+cfg.Port, corsMiddleware.Handler(router)); err != nil {
		logger.Log.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
}
