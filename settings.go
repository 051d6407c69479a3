package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/quoridor/transport/remote"
)

// Environment variables read by the flags below.
const (
	envServerURL   = "QUORIDOR_SERVER_URL"
	envTokens      = "QUORIDOR_TOKENS"
	envListen      = "QUORIDOR_LISTEN"
	envOpeningsDir = "QUORIDOR_OPENINGS_DIR"
	envDefault     = "QUORIDOR_DEFAULT_OPENING"
	envDebug       = "QUORIDOR_DEBUG"
)

// settings gathers everything the commands read from flags and the
// environment.
type settings struct {
	ServerURL   string
	Tokens      map[string]string
	Listen      string
	OpeningsDir string
	Default     string
	Debug       bool
	Ngrok       ngrokSettings
}

type ngrokSettings struct {
	Enabled   bool
	AuthToken string
	Domain    string
}

// loadDotEnv loads .env from the working directory when there is one.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("error loading .env file")
		}
		return
	}
	log.Debug().Msg("loaded environment variables from .env file")
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Usage:   "match server URL",
			Value:   remote.DefaultURL,
			Sources: cli.EnvVars(envServerURL),
		},
		&cli.StringFlag{
			Name:    "tokens",
			Usage:   "player secrets as IDUL:secret pairs separated by commas",
			Sources: cli.EnvVars(envTokens),
		},
		&cli.StringFlag{
			Name:    "openings",
			Usage:   "directory holding the opening files",
			Value:   "openings",
			Sources: cli.EnvVars(envOpeningsDir),
		},
		&cli.StringFlag{
			Name:    "default-opening",
			Usage:   "opening used when a game is created without one",
			Sources: cli.EnvVars(envDefault),
		},
		&cli.BoolFlag{
			Name:    "debug",
			Usage:   "enable debug logging",
			Sources: cli.EnvVars(envDebug),
		},
	}
}

func settingsFrom(cmd *cli.Command) (settings, error) {
	tokens, err := parseTokens(cmd.String("tokens"))
	if err != nil {
		return settings{}, err
	}
	return settings{
		ServerURL:   cmd.String("server"),
		Tokens:      tokens,
		Listen:      cmd.String("listen"),
		OpeningsDir: cmd.String("openings"),
		Default:     cmd.String("default-opening"),
		Debug:       cmd.Bool("debug"),
		Ngrok: ngrokSettings{
			Enabled:   cmd.Bool("ngrok"),
			AuthToken: cmd.String("ngrok-auth"),
			Domain:    cmd.String("ngrok-domain"),
		},
	}, nil
}

// parseTokens reads "idul:secret,idul2:secret2".
func parseTokens(s string) (map[string]string, error) {
	tokens := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		idul, secret, ok := strings.Cut(pair, ":")
		if !ok || idul == "" {
			return nil, fmt.Errorf("malformed token %q, expected IDUL:secret", pair)
		}
		tokens[idul] = secret
	}
	return tokens, nil
}

// secretFor returns the secret of idul.
func (s settings) secretFor(idul string) (string, error) {
	secret, ok := s.Tokens[idul]
	if !ok {
		return "", fmt.Errorf("no secret for %s, set it in %s", idul, envTokens)
	}
	return secret, nil
}
