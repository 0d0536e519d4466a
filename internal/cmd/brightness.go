package cmd

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hoppxi/lumen/internal/engine"
	"github.com/hoppxi/lumen/internal/manager"
	"github.com/hoppxi/lumen/pkg/backlight"
)

func newEngine() *engine.Engine {
	return engine.FromConfig(manager.Config.Load(), deviceFlag)
}

func runRequest(req backlight.Request) error {
	result, err := newEngine().Run(req)
	if err != nil {
		return err
	}
	logrus.Debugf("brightness %d -> %d (%.0f%%)", result.Previous, result.New, result.Percent)
	return nil
}

func parsePercentArg(arg string) (float64, error) {
	value, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: cannot parse %q", backlight.ErrInvalidRequest, arg)
	}
	return value, nil
}

var upCmd = &cobra.Command{
	Use:   "up <percent>",
	Short: "Increase brightness by the given percentage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := parsePercentArg(args[0])
		if err != nil {
			return err
		}
		return runRequest(backlight.Request{Kind: backlight.StepPercent, Value: value})
	},
}

var downCmd = &cobra.Command{
	Use:   "down <percent>",
	Short: "Decrease brightness by the given percentage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := parsePercentArg(args[0])
		if err != nil {
			return err
		}
		return runRequest(backlight.Request{Kind: backlight.StepPercent, Value: -value})
	},
}

var setCmd = &cobra.Command{
	Use:   "set <value>",
	Short: "Set brightness to a percentage or raw value",
	Long: "Set brightness. The value is a percentage like \"40%\", a relative\n" +
		"percentage like \"+5%\" or \"-5%\", a raw device value like \"300\", or a\n" +
		"relative raw value like \"+300\".",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := backlight.ParseRequest(args[0])
		if err != nil {
			return err
		}
		return runRequest(req)
	},
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current brightness percentage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, percent, err := newEngine().Current()
		if err != nil {
			return err
		}
		fmt.Printf("%.0f\n", percent)
		return nil
	},
}
