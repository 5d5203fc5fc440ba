package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Auth           Auth           `mapstructure:",squash"`
	Pagination     Pagination     `mapstructure:",squash"`
	Batch          Batch          `mapstructure:",squash"`
	Lifecycle      Lifecycle      `mapstructure:",squash"`
	Reports        Reports        `mapstructure:",squash"`
	RewardsClosing RewardsClosing `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"` // Vazio usa as origens locais
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"` // postgres ou memory
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret   string        `mapstructure:"auth_secret"`
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

type Pagination struct {
	PageSize    int `mapstructure:"pagination_page_size"`
	MaxPageSize int `mapstructure:"pagination_max_page_size"`
}

type Batch struct {
	MaxConcurrency int `mapstructure:"batch_max_concurrency"`
}

type Lifecycle struct {
	// Arestas permitidas no formato ORIGEM>DESTINO. Vazio usa a malha completa.
	SaleTransitions []string `mapstructure:"lifecycle_sale_transitions"`
}

type Reports struct {
	URL         string        `mapstructure:"reports_url"`
	AccessToken string        `mapstructure:"reports_access_token"`
	Timeout     time.Duration `mapstructure:"reports_timeout"`
}

type RewardsClosing struct {
	CronSchedule string `mapstructure:"rewards_closing_cron"`
	Enabled      bool   `mapstructure:"rewards_closing_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "")

	viper.SetDefault("DATABASE_DRIVER", DriverPostgres)
	viper.SetDefault("DATABASE_URL", "localhost:5432/dealership?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "")
	viper.SetDefault("AUTH_TOKEN_TTL", "12h")

	viper.SetDefault("PAGINATION_PAGE_SIZE", 20)
	viper.SetDefault("PAGINATION_MAX_PAGE_SIZE", 100)

	viper.SetDefault("BATCH_MAX_CONCURRENCY", 4)

	viper.SetDefault("LIFECYCLE_SALE_TRANSITIONS", "")

	viper.SetDefault("REPORTS_URL", "http://localhost:8081/v1")
	viper.SetDefault("REPORTS_ACCESS_TOKEN", "")
	viper.SetDefault("REPORTS_TIMEOUT", "30s")

	// Fechamento de premiações
	viper.SetDefault("REWARDS_CLOSING_CRON", "0 5 1 * *") // No primeiro dia de cada mês às 5h da manhã
	viper.SetDefault("REWARDS_CLOSING_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate garante valores mínimos para os parâmetros de execução
func (c *Config) Validate() error {
	if c.Database.Driver != DriverPostgres && c.Database.Driver != DriverMemory {
		return fmt.Errorf("driver de banco inválido: %s", c.Database.Driver)
	}
	if c.Auth.Secret == "" {
		return fmt.Errorf("AUTH_SECRET é obrigatório")
	}
	if c.Pagination.PageSize <= 0 {
		c.Pagination.PageSize = 20
	}
	if c.Pagination.MaxPageSize < c.Pagination.PageSize {
		c.Pagination.MaxPageSize = c.Pagination.PageSize
	}
	if c.Batch.MaxConcurrency <= 0 {
		c.Batch.MaxConcurrency = 1
	}
	return nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
