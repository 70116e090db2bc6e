package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Диагностика базы данных: доступность таблиц, количество записей,
// подозрительные состояния. Только чтение. Подключение берется из тех же
// переменных окружения DATABASE_*, что и у бота.
func main() {
	_ = godotenv.Load()

	for _, name := range []string{"DATABASE_HOST", "DATABASE_USER", "DATABASE_DBNAME"} {
		if os.Getenv(name) == "" {
			log.Fatalf("Переменная окружения %s не установлена", name)
		}
	}

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		os.Getenv("DATABASE_HOST"),
		envOrDefault("DATABASE_PORT", "5432"),
		os.Getenv("DATABASE_USER"),
		os.Getenv("DATABASE_PASSWORD"),
		os.Getenv("DATABASE_DBNAME"),
		envOrDefault("DATABASE_SSLMODE", "disable"),
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Не удалось открыть подключение: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("БД недоступна: %v", err)
	}
	fmt.Println("Подключение установлено")

	fmt.Println("\nПроверка таблиц:")
	tables := []string{"chats", "pictures", "questions", "reactions", "feedbacks"}
	for _, table := range tables {
		var count int
		if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
			fmt.Printf("  %-10s недоступна: %v\n", table, err)
			continue
		}
		fmt.Printf("  %-10s %d записей\n", table, count)
	}

	fmt.Println("\nСтатистика вопросов:")
	var published, proposed int
	if err := db.QueryRow("SELECT COUNT(*) FROM questions WHERE is_published").Scan(&published); err == nil {
		fmt.Printf("  опубликованных: %d\n", published)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM questions WHERE NOT is_published AND author_id IS NOT NULL").Scan(&proposed); err == nil {
		fmt.Printf("  на модерации: %d\n", proposed)
	}

	// Реакции без единой отметки исхода не должны существовать
	var empty int
	err = db.QueryRow(`SELECT COUNT(*) FROM reactions
		WHERE answered_at IS NULL AND skipped_at IS NULL AND gave_up_at IS NULL`).Scan(&empty)
	if err == nil && empty > 0 {
		fmt.Printf("\nВнимание: реакций без единой отметки исхода: %d\n", empty)
	}

	// Баланс может уйти максимум до -1 в пределах одного цикла
	var negative int
	if err := db.QueryRow("SELECT COUNT(*) FROM chats WHERE balance < -1").Scan(&negative); err == nil && negative > 0 {
		fmt.Printf("Внимание: чатов с балансом ниже -1: %d\n", negative)
	}

	var unanswered int
	if err := db.QueryRow("SELECT COUNT(*) FROM feedbacks WHERE response IS NULL").Scan(&unanswered); err == nil {
		fmt.Printf("\nОбращений без ответа: %d\n", unanswered)
	}

	fmt.Println("\nПроверка завершена")
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}
