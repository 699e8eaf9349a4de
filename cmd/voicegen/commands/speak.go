package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tahcohcat/voicegen/internal/persona"
)

func newSpeakCmd(opts *rootOptions) *cobra.Command {
	var (
		personaName string
		out         string
		mute        bool
	)

	cmd := &cobra.Command{
		Use:   "speak [keywords...]",
		Short: "Generate and play one sentence",
		Long: `Send keywords to the backend once and play the returned audio.

The generated sentence is printed when the backend provides it.

Example:
  voicegen speak rainy day umbrella --persona polite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := persona.Parse(personaName)
			if err != nil {
				return err
			}

			ctrl := opts.newController(opts.newPlayer(out, mute))
			if err := ctrl.Submit(cmd.Context(), strings.Join(args, " "), p); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if caption := ctrl.Caption(); caption != "" {
				fmt.Fprintln(w, renderCaption(caption))
			}
			if out != "" {
				fmt.Fprintln(w, HelpStyle.Render("Saved audio to "+out))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&personaName, "persona", "p", string(persona.Default), "Polite, Sarcastic or Professional")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the audio to a file instead of playing it")
	cmd.Flags().BoolVar(&mute, "mute", false, "do not play the audio")
	return cmd
}
