package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Adsterra       Adsterra       `mapstructure:",squash"`
	Telegram       Telegram       `mapstructure:",squash"`
	SessionCleanup SessionCleanup `mapstructure:",squash"`

	RawAllowedUsers string `mapstructure:"bot_allowed_users"`
	RawDomains      string `mapstructure:"bot_domains"`

	// AllowedUsers é a tabela estática username -> password do bot.
	AllowedUsers map[string]string `mapstructure:"-"`
	// Domains é o catálogo de domínios exibido no menu (id -> nome).
	Domains map[int64]string `mapstructure:"-"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Server é o endereço do servidor HTTP de healthcheck e métricas.
type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Adsterra struct {
	BaseURL        string `mapstructure:"adsterra_base_url"`
	APIKey         string `mapstructure:"adsterra_api_key"`
	TimeoutSeconds int    `mapstructure:"adsterra_timeout_seconds"`
}

type Telegram struct {
	BaseURL            string `mapstructure:"telegram_base_url"`
	BotToken           string `mapstructure:"telegram_bot_token"`
	PollTimeoutSeconds int    `mapstructure:"telegram_poll_timeout_seconds"`
}

type SessionCleanup struct {
	CronSchedule string `mapstructure:"session_cleanup_cron"`
	MaxIdleDays  int    `mapstructure:"session_cleanup_max_idle_days"`
	Enabled      bool   `mapstructure:"session_cleanup_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/adsterra_bot")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("ADSTERRA_BASE_URL", "https://api3.adsterratools.com/publisher")
	viper.SetDefault("ADSTERRA_API_KEY", "")
	viper.SetDefault("ADSTERRA_TIMEOUT_SECONDS", 15)

	viper.SetDefault("TELEGRAM_BASE_URL", "https://api.telegram.org")
	viper.SetDefault("TELEGRAM_BOT_TOKEN", "")
	viper.SetDefault("TELEGRAM_POLL_TIMEOUT_SECONDS", 50)

	viper.SetDefault("SESSION_CLEANUP_CRON", "0 5 * * *") // Todos os dias às 5h da manhã
	viper.SetDefault("SESSION_CLEANUP_MAX_IDLE_DAYS", 30)
	viper.SetDefault("SESSION_CLEANUP_ENABLED", false)

	// username|password separados por vírgula
	viper.SetDefault("BOT_ALLOWED_USERS", "tonxmedia|Sukses2026")
	// id=nome separados por ponto e vírgula
	viper.SetDefault("BOT_DOMAINS", "1597430=DIRECTLINK (1597430);4638075=asupankitasemua.xyz (4638075)")

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

	config.AllowedUsers = ParseAllowedUsers(config.RawAllowedUsers)
	if len(config.AllowedUsers) == 0 {
		logrus.Warn("Nenhum usuário permitido configurado, ninguém conseguirá fazer login")
	}

	config.Domains = ParseDomains(config.RawDomains)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// ParseAllowedUsers interpreta a lista "username|password,username|password".
// Entradas malformadas são descartadas com aviso.
func ParseAllowedUsers(raw string) map[string]string {
	users := make(map[string]string)

	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.SplitN(entry, "|", 2)
		if len(parts) != 2 || parts[0] == "" {
			logrus.Warnf("Entrada de usuário ignorada por formato inválido: %q", entry)
			continue
		}

		users[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}

	return users
}

// ParseDomains interpreta o catálogo "id=nome;id=nome".
func ParseDomains(raw string) map[int64]string {
	domains := make(map[int64]string)

	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			logrus.Warnf("Entrada de domínio ignorada por formato inválido: %q", entry)
			continue
		}

		id, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
		if err != nil {
			logrus.Warnf("ID de domínio ilegível, entrada ignorada: %q", entry)
			continue
		}

		domains[id] = strings.TrimSpace(parts[1])
	}

	return domains
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
