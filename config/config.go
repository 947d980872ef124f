package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetSeconds(config map[string]string, key string, defaultValue time.Duration) time.Duration {
	seconds := GetInt(config, key, int(defaultValue/time.Second))
	return time.Duration(seconds) * time.Second
}

// DatabaseConfig holds the connection-factory settings consumed by the
// persistence layer. Everything comes from the environment; defaults mirror
// a local development database.
type DatabaseConfig struct {
	Type     string // "mysql" or "postgres"
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Charset  string // mysql only

	MaxConns       int
	MinIdleConns   int
	AcquireTimeout time.Duration
}

// NewDatabaseConfig reads the database settings out of an environment snapshot.
func NewDatabaseConfig(c map[string]string) DatabaseConfig {
	return DatabaseConfig{
		Type:     GetString(c, "DB_TYPE", "mysql"),
		Host:     GetString(c, "DB_HOST", "localhost"),
		Port:     GetInt(c, "DB_PORT", 3306),
		User:     GetString(c, "DB_USER", "root"),
		Password: GetString(c, "DB_PASSWORD", ""),
		Name:     GetString(c, "DB_NAME", "promptdeck"),
		Charset:  GetString(c, "DB_CHARSET", "utf8mb4"),

		MaxConns:       GetInt(c, "DB_MAX_CONNS", 6),
		MinIdleConns:   GetInt(c, "DB_MIN_IDLE_CONNS", 2),
		AcquireTimeout: GetSeconds(c, "DB_ACQUIRE_TIMEOUT_SECONDS", 5*time.Second),
	}
}
