package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hoppxi/lumen/internal/manager"
	"github.com/hoppxi/lumen/pkg/backlight"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backlight devices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		curve := backlight.NewCurve(manager.Config.Load().GetFloat64("curve.exponent"))

		devices, err := backlight.List(backlight.DefaultRoot)
		if err != nil {
			return err
		}
		if len(devices) == 0 {
			return backlight.ErrNoDevice
		}

		for _, d := range devices {
			fmt.Printf("%s\t%d/%d\t%.0f%%\n", d.Name, d.Current, d.Max, curve.PercentOf(d.Current, d.Max))
		}
		return nil
	},
}
