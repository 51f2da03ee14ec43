package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mcdev12/meshiroyale/go/internal/models"
)

type Config struct {
	server   string
	gateway  string
	room     string
	name     string
	strategy string
	tuning   string
	game     string
	expected int
	seed     uint64
	timeout  time.Duration
	lat      float64
	lng      float64
	radius   int
	verbose  bool
}

func (c *Config) validate() error {
	if c.server == "" {
		return errors.New("--server is required")
	}
	if _, ok := strategies[c.strategy]; !ok {
		return fmt.Errorf("unknown strategy %q (want one of %s)", c.strategy, strings.Join(strategyNames(), ", "))
	}
	if c.room == "" && c.game != "" {
		if _, err := models.ParseGameType(c.game); err != nil {
			return err
		}
	}
	if c.expected < 0 {
		return fmt.Errorf("invalid --expected: %d", c.expected)
	}
	if (c.lat == 0) != (c.lng == 0) {
		return errors.New("both --lat and --lng must be provided together")
	}
	return nil
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "partybot",
		Short:         "A headless MeshiRoyale player.",
		Version:       releaseVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.AddCommand(newPlayCmd(&Config{}), newSelectCmd())

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("partybot v{{.Version}}\n")
	return cmd
}

func newPlayCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Join a room, play its game and print the leaderboard.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return runPlay(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	fs := cmd.Flags()
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.server, "server", "s", "http://localhost:8080", "API server URL (env: PARTYBOT_SERVER)")
	fs.StringVarP(&cfg.gateway, "gateway", "g", "ws://localhost:8081", "change feed gateway URL, empty to poll only (env: PARTYBOT_GATEWAY)")
	fs.StringVarP(&cfg.room, "room", "r", "", "room code to join or create, empty for solo play (env: PARTYBOT_ROOM)")
	fs.StringVarP(&cfg.name, "name", "n", "", "display name (env: PARTYBOT_NAME)")
	fs.StringVar(&cfg.strategy, "strategy", "human", "input strategy: "+strings.Join(strategyNames(), ", ")+" (env: PARTYBOT_STRATEGY)")
	fs.StringVar(&cfg.tuning, "tuning", "", "YAML file with game constants (env: PARTYBOT_TUNING)")
	fs.StringVar(&cfg.game, "game", string(models.GameTypeButtonMashing), "game to play solo (env: PARTYBOT_GAME)")
	fs.IntVar(&cfg.expected, "expected", 0, "results to wait for, defaults to the room size at launch (env: PARTYBOT_EXPECTED)")
	fs.Uint64Var(&cfg.seed, "seed", 0, "seed for random game content and bot behaviour (env: PARTYBOT_SEED)")
	fs.DurationVar(&cfg.timeout, "timeout", 0, "give up waiting after this long, 0 waits forever (env: PARTYBOT_TIMEOUT)")
	fs.Float64Var(&cfg.lat, "lat", 0, "latitude used to pick a restaurant candidate (env: PARTYBOT_LAT)")
	fs.Float64Var(&cfg.lng, "lng", 0, "longitude used to pick a restaurant candidate (env: PARTYBOT_LNG)")
	fs.IntVar(&cfg.radius, "radius", 1000, "restaurant search radius in meters (env: PARTYBOT_RADIUS)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "log protocol events (env: PARTYBOT_VERBOSE)")

	bindEnv(fs, "PARTYBOT")
	return cmd
}

func newSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select CODE",
		Short: "Print the game route a room code selects.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), selectRoute(args[0]))
			return err
		},
	}
}

// bindEnv lets PREFIX_FLAG_NAME environment variables fill unset flags.
func bindEnv(fs *pflag.FlagSet, prefix string) {
	v := viper.New()
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}
