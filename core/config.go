package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	// APIConfig holds the settings of the LinkUDP backend connection.
	APIConfig struct {
		BaseURL     string
		Timeout     time.Duration
		RetryMax    int           // retry attempts for idempotent reads only
		BackoffBase time.Duration // first retry delay
		BackoffMax  time.Duration // delay ceiling
	}

	Config struct {
		Debug        bool
		Env          string // DEV (default), TEST, QA, PROD
		AppName      string
		Build        string
		TokenFile    string // path of the persisted session token slot
		RollbarToken string
		API          APIConfig
	}
)

func (c Config) IsDev() bool  { return c.Env == "DEV" }
func (c Config) IsTest() bool { return c.Env == "TEST" }

// LoadConfig reads configuration from the environment (prefix "LINKUDP_"),
// an optional .env file in the working directory, and built-in defaults.
func LoadConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", false)
	conf.SetDefault("appName", "LinkUDP")
	conf.SetDefault("build", "dev")
	conf.SetDefault("tokenFile", defaultTokenFile())
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("api.baseUrl", "http://localhost:3000")
	conf.SetDefault("api.timeout", 15*time.Second)
	conf.SetDefault("api.retryMax", 2)
	conf.SetDefault("api.backoffBase", 250*time.Millisecond)
	conf.SetDefault("api.backoffMax", 2*time.Second)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
		conf.SetDefault("debug", true)
	case "TEST":
		conf.SetDefault("debug", true)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(workDir(), ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}

	conf.SetEnvPrefix("linkudp")
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	conf.AutomaticEnv()

	return &Config{
		Debug:        conf.GetBool("debug"),
		Env:          env,
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		TokenFile:    conf.GetString("tokenFile"),
		RollbarToken: conf.GetString("rollbarToken"),
		API: APIConfig{
			BaseURL:     strings.TrimRight(conf.GetString("api.baseUrl"), "/"),
			Timeout:     conf.GetDuration("api.timeout"),
			RetryMax:    conf.GetInt("api.retryMax"),
			BackoffBase: conf.GetDuration("api.backoffBase"),
			BackoffMax:  conf.GetDuration("api.backoffMax"),
		},
	}
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "linkudp", "token")
}

func workDir() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	return wd
}
