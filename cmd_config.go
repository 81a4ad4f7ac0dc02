package main

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"go-abcplay/config"
	"go-abcplay/music"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or edit the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configVoiceCmd = &cobra.Command{
	Use:   "voice NAME INSTRUMENT",
	Short: "Assign a General MIDI instrument to a voice",
	Example: `  abcplay config voice melody piano
  abcplay config voice "" flute`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := music.LookupInstrument(args[1]); err != nil {
			return err
		}
		cfg.SetVoice(config.VoiceConfig{Name: args[0], Instrument: args[1]})
		if err := saveConfig(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "voice %q -> %s\n", args[0], args[1])
		return nil
	},
}

var configPortCmd = &cobra.Command{
	Use:   "port NAME",
	Short: "Set the default MIDI output port",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.Output.PortName = args[0]
		return saveConfig()
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configVoiceCmd)
	configCmd.AddCommand(configPortCmd)
}

func saveConfig() error {
	if configFlag != "" {
		return cfg.SaveTo(configFlag)
	}
	return cfg.Save()
}
