package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// conversion
	Tokenizer string
	Strict    bool
	Validate  bool
	Escape    bool
	Trace     bool
	KeysPath  string
	Timeout   time.Duration

	// run history
	History        bool
	MySQLHost      string
	MySQLPort      int
	MySQLUser      string
	MySQLPassword  string
	MySQLDB        string
	ConnectTimeout time.Duration
	QueryTimeout   time.Duration
}

// Load reads envFile (".env" when empty) if it exists, then the process environment.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		_ = godotenv.Load() // optional
	} else if err := godotenv.Load(envFile); err != nil {
		return nil, err
	}

	return &Config{
		Tokenizer: strings.ToLower(getenv("CSV2JSON_TOKENIZER", "smart")),
		Strict:    getenvBool("CSV2JSON_STRICT", false),
		Validate:  getenvBool("CSV2JSON_VALIDATE", false),
		Escape:    getenvBool("CSV2JSON_ESCAPE", false),
		Trace:     getenvBool("CSV2JSON_TRACE", false),
		KeysPath:  getenv("CSV2JSON_KEYS", ""),
		Timeout:   time.Duration(getenvInt("CSV2JSON_TIMEOUT", 300)) * time.Second,

		History:        getenvBool("CSV2JSON_HISTORY", false),
		MySQLHost:      getenv("MYSQL_HOST", "127.0.0.1"),
		MySQLPort:      getenvInt("MYSQL_PORT", 3306),
		MySQLUser:      getenv("MYSQL_USER", "root"),
		MySQLPassword:  getenv("MYSQL_PASSWORD", ""),
		MySQLDB:        getenv("MYSQL_DB", "csv2json"),
		ConnectTimeout: time.Duration(getenvInt("DB_CONNECT_TIMEOUT", 5)) * time.Second,
		QueryTimeout:   time.Duration(getenvInt("DB_QUERY_TIMEOUT", 30)) * time.Second,
	}, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
