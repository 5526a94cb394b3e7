package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application settings. Values come from code defaults,
// an optional config/.env.<env> file and environment variables prefixed
// with the current ENV (e.g. PROD_SECRETKEY), in increasing precedence.
type Config struct {
	Debug    bool
	TestMode bool
	Env      string // DEV (default), TEST, QA, PROD
	Build    string

	AppName         string
	SecretKey       string
	Address         string
	FrontendBaseURL string

	Database struct {
		Path string
	}

	DefaultFromEmail mail.Address
	SendgridAPIKey   string
	RollbarToken     string

	JWTExpirationDelta        time.Duration
	JWTRefreshExpirationDelta time.Duration
}

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("appName", "EdWeb")
	conf.SetDefault("secretKey", "q2d%e5t-wlt)du#0f^s&low%$ow3x1u_i%5-9=b0f=lj3b$dj(")
	conf.SetDefault("address", ":8000")
	conf.SetDefault("frontendBaseURL", "http://localhost:5173")
	conf.SetDefault("database.path", filepath.Join("data", "db.json"))
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	c := &Config{
		Debug:                     conf.GetBool("debug"),
		TestMode:                  conf.GetBool("testMode"),
		Env:                       env,
		Build:                     conf.GetString("build"),
		AppName:                   conf.GetString("appName"),
		SecretKey:                 conf.GetString("secretKey"),
		Address:                   conf.GetString("address"),
		FrontendBaseURL:           conf.GetString("frontendBaseURL"),
		DefaultFromEmail:          mail.Address{Name: conf.GetString("appName"), Address: conf.GetString("defaultFromEmail")},
		SendgridAPIKey:            conf.GetString("sendgridApiKey"),
		RollbarToken:              conf.GetString("rollbarToken"),
		JWTExpirationDelta:        conf.GetDuration("jwtExpirationDelta"),
		JWTRefreshExpirationDelta: conf.GetDuration("jwtRefreshExpirationDelta"),
	}
	c.Database.Path = conf.GetString("database.path")
	return c
}
