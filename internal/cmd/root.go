package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var Version = "0.1.0"

var (
	deviceFlag  string
	verboseFlag int
	quietFlag   int
)

var rootCmd = &cobra.Command{
	Use:     "lumen",
	Version: Version,
	Short:   "Control screen backlight brightness",
	Long: "Lumen adjusts the backlight brightness of your display through\n" +
		"/sys/class/backlight and shows the new level as a desktop notification.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		logrus.SetLevel(logLevel(verboseFlag, quietFlag))
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// logLevel maps the stacked -v and -q flags to a logrus level, defaulting
// to Info.
func logLevel(verbose, quiet int) logrus.Level {
	switch n := verbose - quiet; {
	case n <= -2:
		return logrus.ErrorLevel
	case n == -1:
		return logrus.WarnLevel
	case n == 0:
		return logrus.InfoLevel
	case n == 1:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&deviceFlag, "device", "d", "", "Backlight device to use (see `lumen list`)")
	rootCmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v", "Show more log messages")
	rootCmd.PersistentFlags().CountVarP(&quietFlag, "quiet", "q", "Show less log messages")

	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(downCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(generateConfigCmd)
}
