package repository

import "time"

// CacheRepository определяет методы для работы с кешем.
// Используется для хранения минимальных состояний диалогов между веб-хуками.
type CacheRepository interface {
	SetJSON(key string, value interface{}, expiration time.Duration) error
	// GetJSON возвращает apperrors.ErrNotFound, если ключа нет или он истек
	GetJSON(key string, dest interface{}) error
	Delete(key string) error
	Exists(key string) (bool, error)
}
