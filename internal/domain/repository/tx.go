package repository

// TxRepos — набор репозиториев, привязанных к одной транзакции
type TxRepos struct {
	Chats     ChatRepository
	Questions QuestionRepository
	Reactions ReactionRepository
}

// TxManager выполняет функцию в рамках одной транзакции БД.
// Набор записей одного перехода (upsert реакции + изменение баланса)
// применяется целиком или не применяется вовсе.
type TxManager interface {
	WithinTx(fn func(r TxRepos) error) error
}
