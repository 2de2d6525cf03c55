// main.go - thin loader and monitor CLI over the vxt core

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/virtualxt/vxt"
)

func main() {
	var loadAddr uint32
	var steps int

	root := &cobra.Command{
		Use:   "vxtmon <image>",
		Short: "Load a flat binary image, step the core, and print the monitor table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			sys := vxt.NewSystem(vxt.Tier80286, 4_772_727)
			if err := sys.Initialize(); err != nil {
				return err
			}
			sys.Reset()

			for i, b := range data {
				sys.Bus.WriteByte(loadAddr+uint32(i), b)
			}

			for i := 0; i < steps; i++ {
				res := sys.Step(1000)
				if res.Err != nil {
					return res.Err
				}
				if res.Halted {
					break
				}
			}

			for _, e := range sys.Monitor.Entries() {
				fmt.Printf("%-6s %-8s %04X\n", e.Owner, e.Label, e.Read())
			}
			return nil
		},
	}
	root.Flags().Uint32Var(&loadAddr, "addr", 0x7C00, "linear address to load the image at")
	root.Flags().IntVar(&steps, "steps", 1, "number of step budgets to execute")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
