package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных
	// (например, callback с действием вне допустимого набора).
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния
	// (например, параллельная вставка дубликата реакции в обход upsert-пути).
	ErrConflict = errors.New("resource state conflict")

	// ErrStoreUnavailable используется для временных сбоев хранилища.
	// Ядро не ретраит само — политика повторов принадлежит транспортному слою.
	ErrStoreUnavailable = errors.New("store unavailable")
)
