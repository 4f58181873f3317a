package utils

import (
	"encoding/hex"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ChangeName строит имя для загруженного файла: сортируемая метка времени +
// случайная часть + исходное расширение. Путь и имя, присланные клиентом,
// в итоговое имя не попадают.
func ChangeName(original string) string {
	ext := filepath.Ext(original)
	u := uuid.New()
	return time.Now().Format("20060102150405") + hex.EncodeToString(u[:]) + ext
}
