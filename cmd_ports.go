package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-abcplay/midi"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI output ports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := midi.ListPorts()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for i, name := range names {
			mark := " "
			if name == cfg.Output.PortName {
				mark = "*"
			}
			fmt.Fprintf(w, "%s %d: %s\n", mark, i, name)
		}
		return nil
	},
}
