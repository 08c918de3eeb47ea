package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Backends aceitos para as coleções locais.
const (
	StoreBackendMemory = "memory"
	StoreBackendRedis  = "redis"
	StoreBackendSQLite = "sqlite"
)

// Config armazena todas as configurações do aplicativo GoTire.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Store local de coleções
	StoreBackend   string
	SQLitePath     string
	RedisAddr      string
	RedisKeyPrefix string
	CacheTimeout   time.Duration

	// Espelho remoto (PostgreSQL). Vazio desativa o espelho.
	DatabaseURL   string
	DBTimeout     time.Duration
	MirrorTimeout time.Duration

	// Segurança (JWT)
	JWTSecretKey string
	TokenExpiry  time.Duration
	// Conta admin criada quando não há nenhum operador. Vazio = não cria.
	AdminUsername string
	AdminPassword string

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	// Lotes
	BatchYieldEvery int
	// Status dado a pneus "Novo" ao serem movidos.
	ActiveStatus string

	// Catálogo inicial (YAML). Vazio = sem seed.
	SeedFile string
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
// O .env, se existir, já foi carregado pelo godotenv no main.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Store local
		StoreBackend:   getEnv("STORE_BACKEND", StoreBackendSQLite),
		SQLitePath:     getEnv("SQLITE_PATH", "gotire.db"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisKeyPrefix: getEnv("REDIS_KEY_PREFIX", "gotire:"),
		CacheTimeout:   getDurationEnv("CACHE_TIMEOUT_SEC", 10) * time.Second,

		// 3. Espelho remoto
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		DBTimeout:     getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,
		MirrorTimeout: getDurationEnv("MIRROR_TIMEOUT_SEC", 15) * time.Second,

		// 4. Segurança (JWT)
		JWTSecretKey: mustGetEnv("JWT_SECRET_KEY"),
		TokenExpiry:  getDurationEnv("JWT_EXPIRY_MIN", 60) * time.Minute,

		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		// 5. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,

		// 6. Lotes e seed
		BatchYieldEvery: getIntEnv("BATCH_YIELD_EVERY", 50),
		ActiveStatus:    getEnv("ACTIVE_STATUS", "Piloto"),
		SeedFile:        getEnv("SEED_FILE", ""),
	}

	switch cfg.StoreBackend {
	case StoreBackendMemory, StoreBackendRedis, StoreBackendSQLite:
	default:
		log.Fatalf("❌ Erro de Configuração: STORE_BACKEND '%s' inválido (memory, redis ou sqlite).", cfg.StoreBackend)
	}

	return cfg
}

// MirrorEnabled informa se o espelho remoto está configurado.
func (c *Config) MirrorEnabled() bool {
	return c.DatabaseURL != ""
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
