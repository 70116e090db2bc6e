package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Telegram TelegramConfig
	Quiz     QuizConfig
	Storage  StorageConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт). Используется для всех режимов.
	// Для 'single', если не пуст, используется первый адрес из списка.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Альтернативный адрес для режима 'single' (для обратной совместимости).
	// Используется, если Mode="single" и Addrs пустой.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	// MaxRetries: Максимальное количество попыток переподключения (-1 - бесконечно). По умолчанию 0 (без ретраев).
	MaxRetries int `mapstructure:"max_retries"`

	// MinRetryBackoff: Минимальный интервал между попытками (в миллисекундах). По умолчанию 8ms.
	MinRetryBackoff int `mapstructure:"min_retry_backoff"`

	// MaxRetryBackoff: Максимальный интервал между попытками (в миллисекундах). По умолчанию 512ms.
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"`
}

// TelegramConfig содержит настройки Bot API
type TelegramConfig struct {
	// Token — токен бота
	Token string `mapstructure:"token"`
	// AdminChatID — чат для служебных уведомлений
	AdminChatID int64 `mapstructure:"admin_chat_id"`
	// WebhookSecret — секретный токен веб-хука; пустой отключает проверку
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// QuizConfig содержит настройки игровой механики
type QuizConfig struct {
	// InitialBalance — баланс при первом контакте с ботом
	InitialBalance int `mapstructure:"initial_balance"`
	// SessionTTLMinutes — время жизни незавершенной сессии в минутах
	SessionTTLMinutes int `mapstructure:"session_ttl_minutes"`
}

// SessionTTL возвращает время жизни сессии
func (q *QuizConfig) SessionTTL() time.Duration {
	return time.Duration(q.SessionTTLMinutes) * time.Minute
}

// StorageConfig содержит настройки хранилища картинок
type StorageConfig struct {
	// Endpoint — публичная точка входа хранилища
	Endpoint string `mapstructure:"endpoint"`
	// Bucket — имя бакета с картинками
	Bucket string `mapstructure:"bucket"`
	// UploadDir — локальный каталог для загружаемых файлов
	UploadDir string `mapstructure:"upload_dir"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load загружает конфигурацию из файла
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния

	// 1. Устанавливаем значения по умолчанию
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.readtimeout", 10)
	vip.SetDefault("server.writetimeout", 10)
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("quiz.initial_balance", 30)
	vip.SetDefault("quiz.session_ttl_minutes", 30)
	vip.SetDefault("storage.upload_dir", "uploads")

	// 2. Привязываем переменные окружения ЯВНО
	// Привязка для секции Database
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	// Привязка для секции Redis
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS") // Для массива строк
	vip.BindEnv("redis.addr", "REDIS_ADDR")   // Для одиночной строки
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	// Привязка для секции Telegram
	vip.BindEnv("telegram.token", "TELEGRAM_TOKEN")
	vip.BindEnv("telegram.admin_chat_id", "TELEGRAM_ADMIN_CHAT_ID")
	vip.BindEnv("telegram.webhook_secret", "TELEGRAM_WEBHOOK_SECRET")

	// Привязка для секции Quiz
	vip.BindEnv("quiz.initial_balance", "QUIZ_INITIAL_BALANCE")
	vip.BindEnv("quiz.session_ttl_minutes", "QUIZ_SESSION_TTL_MINUTES")

	// Привязка для секции Storage
	vip.BindEnv("storage.endpoint", "STORAGE_ENDPOINT")
	vip.BindEnv("storage.bucket", "STORAGE_BUCKET")
	vip.BindEnv("storage.upload_dir", "STORAGE_UPLOAD_DIR")

	// Привязка для Server
	vip.BindEnv("server.port", "SERVER_PORT")

	// 3. Устанавливаем путь к файлу конфигурации
	if configPath != "" {
		vip.SetConfigFile(configPath)
		// 4. Пытаемся прочитать файл конфигурации (не страшно, если его нет, т.к. есть BindEnv)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	// 5. Анмаршалим конфигурацию (Viper объединит значения из файла и привязанных env vars)
	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Логирование конфигурации (только в debug режиме)
	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Port: %s", cfg.Database.Port)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Redis Mode: %s", cfg.Redis.Mode)
		log.Printf("Telegram Token Set: %t", cfg.Telegram.Token != "")
		log.Printf("Telegram Admin Chat ID: %d", cfg.Telegram.AdminChatID)
		log.Printf("Webhook Secret Set: %t", cfg.Telegram.WebhookSecret != "")
		log.Printf("Initial Balance: %d", cfg.Quiz.InitialBalance)
		log.Printf("Session TTL: %s", cfg.Quiz.SessionTTL())
		log.Printf("Storage Endpoint: %s", cfg.Storage.Endpoint)
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("-----------------------------------------")
	}

	// 7. Проверка обязательных параметров
	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("telegram token is required in config (check TELEGRAM_TOKEN env var)")
	}
	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if cfg.Quiz.InitialBalance <= 0 {
		return nil, fmt.Errorf("quiz initial balance must be positive (check QUIZ_INITIAL_BALANCE env var)")
	}

	return &cfg, nil
}
