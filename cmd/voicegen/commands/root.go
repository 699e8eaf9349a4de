package commands

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/tahcohcat/voicegen/config"
	"github.com/tahcohcat/voicegen/internal/logger"
	"github.com/tahcohcat/voicegen/internal/playback"
	"github.com/tahcohcat/voicegen/internal/speech"
)

// rootOptions holds the persistent flags and the loaded configuration.
type rootOptions struct {
	backend string
	verbose bool
	cfg     *config.Config
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "voicegen",
		Short: "Turn keywords into spoken sentences",
		Long: `voicegen - send keywords and a persona to a voicegen backend and
play the sentence it speaks back.

Personas: Polite, Sarcastic, Professional

Examples:
  voicegen speak coffee monday --persona sarcastic
  voicegen speak quarterly report --persona professional --out report.mp3
  voicegen form`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			opts.cfg = cfg

			level := cfg.Log.Level
			if opts.verbose {
				level = "debug"
			}
			logger.SetGlobalLevel(level)
			logger.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.backend, "backend", "b", "", "backend base URL (default from client.backend_url)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newSpeakCmd(opts))
	cmd.AddCommand(newFormCmd(opts))
	cmd.AddCommand(newPersonasCmd())
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *rootOptions) backendURL() string {
	if o.backend != "" {
		return o.backend
	}
	return o.cfg.Client.BackendURL
}

func (o *rootOptions) newController(player speech.Player) *speech.Controller {
	client := speech.NewClient(o.backendURL(), &http.Client{Timeout: o.cfg.Client.TimeoutDuration()})
	return speech.NewController(client, player)
}

// newPlayer picks where audio goes: a file, nowhere, or the system player.
func (o *rootOptions) newPlayer(out string, mute bool) speech.Player {
	switch {
	case out != "":
		return playback.File{Path: out}
	case mute:
		return playback.Nop{}
	default:
		return playback.NewSystem(o.cfg.Client.Player, o.cfg.Client.SpoolDir)
	}
}
