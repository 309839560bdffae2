package config

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	postgresStorage "github.com/Badsnus/qr-crafter-bot/internal/adapters/database/postgres"
	"github.com/Badsnus/qr-crafter-bot/internal/adapters/database/redis"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/service"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/utils/location"
	"github.com/Badsnus/qr-crafter-bot/pkg/logger"
)

type Config struct {
	Database   *gorm.DB
	Redis      *redis.Client
	SMTPDialer *gomail.Dialer
}

func setDefaults() {
	viper.SetDefault("settings.debug", false)
	viper.SetDefault("settings.log-to-file", false)
	viper.SetDefault("settings.logs-dir", "logs")
	viper.SetDefault("settings.logging.log-to-channel", false)
	viper.SetDefault("settings.logging.locale", "en")
	viper.SetDefault("settings.logging.channel-log-level", int(2))

	viper.SetDefault("settings.qr.preview-size", 280)
	viper.SetDefault("settings.qr.margin", 8)
	viper.SetDefault("settings.qr.debounce", 500*time.Millisecond)
	viper.SetDefault("settings.qr.error-correction", "Q")
	viper.SetDefault("settings.qr.logo-path", "")
	viper.SetDefault("settings.qr.logo-size", 0.4)
	viper.SetDefault("settings.qr.logo-margin", 0)

	viper.SetDefault("settings.export.formats", []string{"png", "jpeg", "svg"})
	viper.SetDefault("settings.export.default-format", "png")
	viper.SetDefault("settings.export.sizes", []int{200, 300, 400})
	viper.SetDefault("settings.export.default-size", 300)
	viper.SetDefault("settings.export.jpeg-quality", 90)
	viper.SetDefault("settings.export.background-round", 0.0)
	viper.SetDefault("settings.export.margin", 8)
	viper.SetDefault("settings.export.output-dir", ".")
	viper.SetDefault("settings.export.lock-ttl", time.Minute)

	viper.SetDefault("settings.session.ttl", 24*time.Hour)
	viper.SetDefault("settings.designs.limit", 20)

	viper.SetDefault("service.database.port", 5432)
	viper.SetDefault("service.redis.host", "localhost")
	viper.SetDefault("service.redis.port", "6379")
	viper.SetDefault("service.smtp.port", 587)
	viper.SetDefault("service.smtp.domain", "localhost")
}

// Load reads .env, config.yaml and the environment, then initializes the main
// logger. A missing config.yaml is not an error, defaults are used instead.
// A nil output logs to stdout.
func Load(configFile string, output io.Writer) error {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	setDefaults()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	if token := viper.GetString("bot.token"); token != "" {
		if err := os.Setenv("BOT_TOKEN", token); err != nil {
			return err
		}
	}

	loc, err := location.Load()
	if err != nil {
		return fmt.Errorf("load time location: %w", err)
	}

	logCfg := logger.Config{
		Debug:        viper.GetBool("settings.debug"),
		TimeLocation: loc,
		LogToFile:    viper.GetBool("settings.log-to-file"),
		LogsDir:      viper.GetString("settings.logs-dir"),
	}
	if output != nil {
		logCfg.Output = output
		logCfg.NoColor = true
	}
	return logger.Init(logCfg)
}

// Watch re-reads config.yaml on change and calls onChange afterwards.
func Watch(onChange func()) {
	viper.OnConfigChange(func(e fsnotify.Event) {
		logger.Log.Infof("Config file changed: %s (%s)", e.Name, e.Op)
		if onChange != nil {
			onChange()
		}
	})
	viper.WatchConfig()
}

// Get connects the database, redis and smtp. Load must be called first.
func Get() *Config {
	var gormConfig *gorm.Config
	if viper.GetBool("settings.debug") {
		newLogger := gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold: time.Second,
				LogLevel:      gormLogger.Info,
				Colorful:      true,
			},
		)
		gormConfig = &gorm.Config{
			Logger: newLogger,
		}
	} else {
		gormConfig = &gorm.Config{}
	}

	dsn := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=disable",
		viper.GetString("service.database.user"),
		viper.GetString("service.database.password"),
		viper.GetString("service.database.name"),
		viper.GetString("service.database.host"),
		viper.GetInt("service.database.port"),
	)

	database, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		logger.Log.Panicf("Failed to connect to the database: %v", err)
	} else {
		logger.Log.Info("Successfully connected to the database")
	}

	errMigrate := database.AutoMigrate(postgresStorage.Migrations...)
	if errMigrate != nil {
		logger.Log.Panicf("Failed to migrate database: %v", errMigrate)
	}

	redisClient, err := redis.New(redis.Options{
		Host:     viper.GetString("service.redis.host"),
		Port:     viper.GetString("service.redis.port"),
		Password: viper.GetString("service.redis.password"),
		LockTTL:  viper.GetDuration("settings.export.lock-ttl"),
	})
	if err != nil {
		logger.Log.Panicf("Failed to connect to redis: %v", err)
	} else {
		logger.Log.Info("Successfully connected to redis")
	}

	var dialer *gomail.Dialer
	if host := viper.GetString("service.smtp.host"); host != "" {
		dialer = gomail.NewDialer(
			host,
			viper.GetInt("service.smtp.port"),
			viper.GetString("service.smtp.login"),
			viper.GetString("service.smtp.password"),
		)
	}

	return &Config{
		Database:   database,
		Redis:      redisClient,
		SMTPDialer: dialer,
	}
}

func renderSettings() service.RenderSettings {
	return service.RenderSettings{
		ErrorCorrection: viper.GetString("settings.qr.error-correction"),
		LogoPath:        viper.GetString("settings.qr.logo-path"),
		LogoSize:        viper.GetFloat64("settings.qr.logo-size"),
		LogoMargin:      viper.GetInt("settings.qr.logo-margin"),
	}
}

// Generator returns the current preview settings.
func Generator() service.GeneratorConfig {
	size := viper.GetInt("settings.qr.preview-size")
	return service.GeneratorConfig{
		Preview: service.Dimensions{
			Width:  size,
			Height: size,
			Margin: viper.GetInt("settings.qr.margin"),
		},
		Debounce: viper.GetDuration("settings.qr.debounce"),
		Render:   renderSettings(),
	}
}

// Exporter returns the current export settings. Unknown formats are skipped.
func Exporter() service.ExporterConfig {
	var formats []service.Format
	for _, f := range viper.GetStringSlice("settings.export.formats") {
		format, err := service.ParseFormat(f)
		if err != nil {
			logger.Log.Warnf("Skipping export format %q: %v", f, err)
			continue
		}
		formats = append(formats, format)
	}

	return service.ExporterConfig{
		Formats:         formats,
		Margin:          viper.GetInt("settings.export.margin"),
		JPEGQuality:     viper.GetInt("settings.export.jpeg-quality"),
		BackgroundRound: viper.GetFloat64("settings.export.background-round"),
		Render:          renderSettings(),
	}
}

// ExportSizes returns the offered export sizes in pixels.
func ExportSizes() []int {
	return viper.GetIntSlice("settings.export.sizes")
}

// Session returns the session lifetime and the export defaults of new sessions.
func Session() (time.Duration, service.SessionDefaults) {
	format, err := service.ParseFormat(viper.GetString("settings.export.default-format"))
	if err != nil {
		format = service.FormatPNG
	}
	return viper.GetDuration("settings.session.ttl"), service.SessionDefaults{
		Format: format,
		Size:   viper.GetInt("settings.export.default-size"),
	}
}
