package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore сохраняет объекты в локальном каталоге, который раздается
// наружу тем же способом, что и бакет (nginx или синхронизация в бакет).
// Ключ объекта совпадает с именем файла.
type LocalStore struct {
	dir string
}

// NewLocalStore создает хранилище, при необходимости создавая каталог
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать каталог хранилища: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save записывает объект под указанным ключом
func (s *LocalStore) Save(key string, data []byte) error {
	// Компоненты пути в ключе не допускаются
	name := filepath.Base(key)
	return os.WriteFile(filepath.Join(s.dir, name), data, 0o644)
}
