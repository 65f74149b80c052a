package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/quickly-vote/voting"
)

const defaultSQLiteURL = "file:quickly-vote.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_txlock=immediate"

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	VoterSalt    string
	Mode         voting.Mode
	Deadline     time.Time // zero when not configured
	SeedFile     string
}

type ClientConfig struct {
	APIURL   string
	Mode     voting.Mode
	Local    bool
	Deadline time.Time
	Timeout  time.Duration
	Retries  int
}

// LoadDotEnv loads KEY=VALUE pairs from path into the environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var mode, deadline string

	fs := flag.NewFlagSet("quickly-vote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Ballot
	fs.StringVar(&mode, "m", "", "Vote mode (nested or flat)")
	fs.StringVar(&deadline, "deadline", "", "Voting deadline, RFC3339")
	fs.StringVar(&cfg.SeedFile, "seed", "", "JSON file with nominations to seed")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.VoterSalt, "voter-salt", "", "Voter hash salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("invalid database type %q (want sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != "sqlite" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = defaultSQLiteURL
	}

	var err error
	if cfg.Mode, err = parseMode(mode); err != nil {
		return Config{}, err
	}
	if cfg.Deadline, err = parseDeadline(deadline); err != nil {
		return Config{}, err
	}

	if cfg.SeedFile == "" {
		cfg.SeedFile = os.Getenv("SEED_FILE")
	}

	// Secrets - MUST be provided
	if cfg.VoterSalt == "" {
		cfg.VoterSalt = os.Getenv("VOTER_SALT")
	}
	if cfg.VoterSalt == "" {
		return Config{}, errors.New("VOTER_SALT required")
	}

	return cfg, nil
}

// ParseClientFlags parses the terminal client's settings.
func ParseClientFlags(args []string) (ClientConfig, error) {
	var cfg ClientConfig
	var mode, deadline string

	fs := flag.NewFlagSet("ballot", flag.ContinueOnError)
	fs.StringVar(&cfg.APIURL, "u", "", "Voting endpoint URL")
	fs.StringVar(&mode, "m", "", "Vote mode (nested or flat)")
	fs.BoolVar(&cfg.Local, "local", false, "Vote on the built-in ballot without a server")
	fs.StringVar(&deadline, "deadline", "", "Voting deadline, RFC3339")
	fs.DurationVar(&cfg.Timeout, "timeout", 0, "HTTP timeout")
	fs.IntVar(&cfg.Retries, "retries", 0, "Attempts for the initial load")

	if err := fs.Parse(args); err != nil {
		return ClientConfig{}, err
	}

	if cfg.APIURL == "" {
		cfg.APIURL = os.Getenv("VOTE_API_URL")
	}
	if cfg.APIURL == "" && !cfg.Local {
		return ClientConfig{}, errors.New("API URL required (use -u or VOTE_API_URL env, or -local)")
	}

	var err error
	if cfg.Mode, err = parseMode(mode); err != nil {
		return ClientConfig{}, err
	}
	if cfg.Deadline, err = parseDeadline(deadline); err != nil {
		return ClientConfig{}, err
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Retries <= 0 {
		cfg.Retries = 3
	}

	return cfg, nil
}

func parseMode(flagValue string) (voting.Mode, error) {
	if flagValue == "" {
		flagValue = os.Getenv("VOTE_MODE")
	}
	if flagValue == "" {
		return voting.ModeNested, nil
	}
	return voting.ParseMode(flagValue)
}

func parseDeadline(flagValue string) (time.Time, error) {
	if flagValue == "" {
		flagValue = os.Getenv("VOTE_DEADLINE")
	}
	if flagValue == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, flagValue)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid deadline %q: %w", flagValue, err)
	}
	return t, nil
}
