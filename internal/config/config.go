package config

import (
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/xavierca1/mentoria-leads/internal/infra/integration/google"
)

type LogConfig struct {
	Level  string `long:"log.level" env:"LOG_LEVEL" default:"info" description:"Logging level"`
	Format string `long:"log.format" env:"LOG_FORMAT" default:"text" choice:"json" choice:"text" choice:"color" description:"Logging output format"`
}

type MailConfig struct {
	Host string `long:"mail.host" env:"MAIL_HOST" description:"SMTP host"`
	Port int    `long:"mail.port" env:"MAIL_PORT" default:"587" description:"SMTP port"`
	User string `long:"mail.user" env:"MAIL_USER" description:"SMTP user"`
	Pass string `long:"mail.pass" env:"MAIL_PASS" description:"SMTP password"`
	From string `long:"mail.from" env:"MAIL_FROM" default:"nao-responda@mentoria.com.br" description:"Sender address"`
}

// GoogleConfig não tem validação aqui: os segredos são conferidos a cada
// envio, para que OPTIONS e /health funcionem sem eles.
type GoogleConfig struct {
	ServiceAccountEmail string        `long:"google.email" env:"GOOGLE_SERVICE_ACCOUNT_EMAIL" description:"Service account e-mail"`
	PrivateKey          string        `long:"google.private-key" env:"GOOGLE_PRIVATE_KEY" description:"Service account PKCS8 PEM"`
	SpreadsheetID       string        `long:"google.spreadsheet-id" env:"GOOGLE_SPREADSHEET_ID" description:"Destination spreadsheet"`
	SheetName           string        `long:"google.sheet-name" env:"GOOGLE_SHEET_NAME" default:"Sheet1" description:"Destination sheet (tab)"`
	HTTPTimeout         time.Duration `long:"google.http-timeout" env:"GOOGLE_HTTP_TIMEOUT" default:"15s" description:"Timeout for Google calls"`
}

type Config struct {
	Port        string `long:"port" env:"PORT" default:"8080" description:"HTTP port"`
	DatabaseURL string `long:"database-url" env:"DATABASE_URL" description:"Postgres connection string"`
	RabbitMQURL string `long:"rabbitmq-url" env:"RABBITMQ_URL" description:"AMQP URL"`

	Log    LogConfig    `group:"Logging"`
	Mail   MailConfig   `group:"Mail"`
	Google GoogleConfig `group:"Google"`
}

// Load lê o .env (se existir), depois variáveis de ambiente e flags.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("⚠️ Não foi possível ler o .env")
	}

	cfg := &Config{}
	parser := flags.NewParser(cfg, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Credential monta a credencial da conta de serviço a partir da config.
func (c *Config) Credential() google.ServiceAccountCredential {
	return google.ServiceAccountCredential{
		IssuerEmail:   c.Google.ServiceAccountEmail,
		PrivateKeyPEM: c.Google.PrivateKey,
	}
}

func (c *Config) GoogleConfigured() bool {
	return c.Credential().Validate() == nil && c.Google.SpreadsheetID != ""
}

func (c *LogConfig) Configure() error {
	switch c.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "color":
		log.SetFormatter(&log.TextFormatter{ForceColors: true})
	default:
		log.SetFormatter(&log.TextFormatter{})
	}

	lvl, err := log.ParseLevel(c.Level)
	if err != nil {
		return fmt.Errorf("unrecognized log level %q: %w", c.Level, err)
	}
	log.SetLevel(lvl)
	return nil
}
