// Package emberwood parses the player command flags and starts the
// interactive encounter loop.
package emberwood

import (
	"flag"

	entrypoint "github.com/thornvale/emberwood/internal/platform/cmd"
)

// Config holds player command configuration.
type Config struct {
	DBPath      string `env:"EMBERWOOD_DB_PATH" envDefault:"emberwood.db"`
	ScriptsDir  string `env:"EMBERWOOD_SCRIPTS_DIR"`
	UserID      string `env:"EMBERWOOD_USER_ID" envDefault:"local"`
	DisplayName string `env:"EMBERWOOD_DISPLAY_NAME" envDefault:"Adventurer"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the SQLite database (\":memory:\" for ephemeral)")
	fs.StringVar(&cfg.ScriptsDir, "scripts", cfg.ScriptsDir, "Directory of Lua encounter scripts to load")
	fs.StringVar(&cfg.UserID, "user", cfg.UserID, "Player id to play as")
	fs.StringVar(&cfg.DisplayName, "name", cfg.DisplayName, "Player display name")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
