package services

import (
	"io"
	"os"
	"path/filepath"

	"miniblog/internal/logger"
	"miniblog/internal/utils"

	"go.uber.org/zap"
)

type UploadService struct {
	dir string
}

func NewUploadService(dir string) *UploadService {
	return &UploadService{dir: dir}
}

// SaveCover переименовывает загруженную обложку и пишет её в каталог
// загрузок (каталог создаётся при необходимости). Возвращает новое имя —
// именно оно хранится в статье.
func (s *UploadService) SaveCover(src io.Reader, originalName string) (string, error) {
	name := utils.ChangeName(originalName)

	if err := os.MkdirAll(s.dir, os.ModePerm); err != nil {
		logger.Log.Error("Ошибка создания каталога загрузок", zap.String("dir", s.dir), zap.Error(err))
		return "", err
	}

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		logger.Log.Error("Ошибка при сохранении файла", zap.String("filename", name), zap.Error(err))
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		logger.Log.Error("Ошибка записи файла", zap.String("filename", name), zap.Error(err))
		return "", err
	}

	logger.Log.Info("Обложка сохранена", zap.String("filename", name))
	return name, nil
}
