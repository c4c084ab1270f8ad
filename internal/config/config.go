package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/cmgzone/notebookllm/internal/crypto"
)

type DBCfg struct{ DSN string }

type SecretCfg struct {
	Passphrase string // shared with the app; empty means prompt interactively
	Iterations int    // pbkdf2 work factor for new encryptions
}

type Cfg struct {
	DB     DBCfg
	Secret SecretCfg
}

// Load reads configuration from the environment, with .env as a local-dev
// fallback. Nothing here is mandatory: each command validates the fields it
// actually needs, so the offline commands run with no environment at all.
func Load() Cfg {
	// 1) Load .env into process env (if file exists)
	_ = godotenv.Load()

	// 2) Read from env via viper
	viper.AutomaticEnv()
	viper.SetDefault("PBKDF2_ITERATIONS", crypto.DefaultIterations)

	return Cfg{
		DB: DBCfg{DSN: viper.GetString("DB_DSN")},
		Secret: SecretCfg{
			Passphrase: viper.GetString("NOTEBOOKLLM_SECRET"),
			Iterations: viper.GetInt("PBKDF2_ITERATIONS"),
		},
	}
}

// HasDB reports whether a database DSN is configured. Commands that touch
// the api_keys table require one; the offline commands never look at it.
func (c Cfg) HasDB() bool {
	return strings.TrimSpace(c.DB.DSN) != ""
}
