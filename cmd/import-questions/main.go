package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quiz-bot/internal/domain/entity"
	pgRepo "github.com/yourusername/quiz-bot/internal/repository/postgres"
	"github.com/yourusername/quiz-bot/pkg/database"
)

// Импорт вопросов из xlsx-файла. Формат листа: первая строка — заголовок,
// дальше колонки «текст вопроса», «ответ», «комментарий» (опционально).
// Импортированные вопросы сразу публикуются и не имеют автора.
func main() {
	filePath := flag.String("file", "", "путь к xlsx-файлу с вопросами")
	sheet := flag.String("sheet", "", "имя листа (по умолчанию первый)")
	flag.Parse()

	if *filePath == "" {
		log.Fatal("Укажите файл: -file questions.xlsx")
	}

	_ = godotenv.Load()

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		os.Getenv("DATABASE_HOST"),
		envOrDefault("DATABASE_PORT", "5432"),
		os.Getenv("DATABASE_USER"),
		os.Getenv("DATABASE_PASSWORD"),
		os.Getenv("DATABASE_DBNAME"),
		envOrDefault("DATABASE_SSLMODE", "disable"),
	)

	db, err := database.NewPostgresDB(dsn)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	f, err := excelize.OpenFile(*filePath)
	if err != nil {
		log.Fatalf("Не удалось открыть файл: %v", err)
	}
	defer f.Close()

	sheetName := *sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		log.Fatalf("Не удалось прочитать лист %q: %v", sheetName, err)
	}

	now := time.Now()
	var questions []entity.Question
	var skipped int

	for i, row := range rows {
		// Первая строка - заголовок
		if i == 0 {
			continue
		}
		if len(row) < 2 {
			skipped++
			continue
		}

		text := strings.TrimSpace(row[0])
		answer := strings.TrimSpace(row[1])
		if text == "" || answer == "" {
			skipped++
			continue
		}

		question := entity.Question{
			Text:        text,
			Answer:      answer,
			IsPublished: true,
			ApprovedAt:  &now,
		}
		if len(row) > 2 {
			if comment := strings.TrimSpace(row[2]); comment != "" {
				question.Comment = &comment
			}
		}
		questions = append(questions, question)
	}

	if len(questions) == 0 {
		log.Fatalf("В файле не найдено ни одного вопроса (пропущено строк: %d)", skipped)
	}

	questionRepo := pgRepo.NewQuestionRepo(db)
	if err := questionRepo.CreateBatch(questions); err != nil {
		log.Fatalf("Не удалось сохранить вопросы: %v", err)
	}

	log.Printf("Импортировано вопросов: %d, пропущено строк: %d", len(questions), skipped)
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}
