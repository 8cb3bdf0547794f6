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

// Config holds the application configuration, loaded once at startup.
type Config struct {
	Debug    bool
	TestMode bool
	Env      string // DEV (default), TEST, QA, PROD
	AppName  string
	Build    string
	WorkDir  string

	SecretKey        string
	DefaultFromEmail mail.Address
	FrontendBaseURL  string

	SendgridApiKey string
	RollbarToken   string

	// SessionPath is where the persisted session identity lives.
	SessionPath string
	// LoginLatency simulates the network round-trip of a credential check.
	LoginLatency time.Duration
	// FixtureDir overrides the embedded fixture dataset when set.
	FixtureDir string

	Server struct {
		Host            string
		Addr            string
		DebugAddr       string
		ShutdownTimeout time.Duration
	}
}

func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	wd := Getwd()

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Qemer")
	v.SetDefault("build", "dev")
	v.SetDefault("secretKey", "k0r3s-t1m(hrt$+49=qm&zafh8(p!w)#*l5(#bg7n^$demo3qe")
	v.SetDefault("defaultFromEmailName", "Qemer LMS")
	v.SetDefault("defaultFromEmailAddress", "noreply@qemer.com")
	v.SetDefault("frontendBaseUrl", "http://localhost:3000")
	v.SetDefault("sessionPath", filepath.Join(wd, ".qemer-session.json"))
	v.SetDefault("loginLatency", time.Second)
	v.SetDefault("fixtureDir", "")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("serverDebugAddr", ":8001")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
		v.SetDefault("loginLatency", time.Duration(0))
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Debug:    v.GetBool("debug"),
		TestMode: v.GetBool("testMode"),
		Env:      env,
		AppName:  v.GetString("appName"),
		Build:    v.GetString("build"),
		WorkDir:  wd,

		SecretKey: v.GetString("secretKey"),
		DefaultFromEmail: mail.Address{
			Name:    v.GetString("defaultFromEmailName"),
			Address: v.GetString("defaultFromEmailAddress"),
		},
		FrontendBaseURL: v.GetString("frontendBaseUrl"),

		SendgridApiKey: v.GetString("sendgridApiKey"),
		RollbarToken:   v.GetString("rollbarToken"),

		SessionPath:  v.GetString("sessionPath"),
		LoginLatency: v.GetDuration("loginLatency"),
		FixtureDir:   v.GetString("fixtureDir"),
	}
	conf.Server.Host = v.GetString("serverHost")
	conf.Server.Addr = v.GetString("serverAddr")
	conf.Server.DebugAddr = v.GetString("serverDebugAddr")
	conf.Server.ShutdownTimeout = v.GetDuration("serverShutdownTimeout")
	return conf
}
