package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hoppxi/lumen/internal/manager"
)

// Config mirrors the viper keys so the generated file round-trips.
type Config struct {
	Device string `yaml:"device"`
	Curve  struct {
		Exponent float64 `yaml:"exponent"`
	} `yaml:"curve"`
	Writer struct {
		Helper []string `yaml:"helper"`
	} `yaml:"writer"`
	Notify struct {
		Enabled     bool   `yaml:"enabled"`
		TimeoutMS   int    `yaml:"timeout_ms"`
		HandleTTLMS int    `yaml:"handle_ttl_ms"`
		Fallback    string `yaml:"fallback"`
	} `yaml:"notify"`
}

var generateConfigCmd = &cobra.Command{
	Use:   "generate-config",
	Short: "Write a default lumen.yaml config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(os.Stdin)
		yamlPath := manager.ConfigPath()

		if _, err := os.Stat(yamlPath); !os.IsNotExist(err) {
			if !confirm(reader, fmt.Sprintf("%s already exists. Overwrite with defaults?", yamlPath)) {
				return nil
			}
		}

		conf := Config{}
		conf.Curve.Exponent = 2.0
		conf.Writer.Helper = []string{"pkexec", "tee"}
		conf.Notify.Enabled = true
		conf.Notify.TimeoutMS = 2000
		conf.Notify.HandleTTLMS = 5000
		conf.Notify.Fallback = "zenity"

		data, err := yaml.Marshal(&conf)
		if err != nil {
			return err
		}

		header := "# lumen configuration. Leave device empty to auto-select the\n" +
			"# backlight with the highest max_brightness.\n"

		if err := os.MkdirAll(filepath.Dir(yamlPath), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(yamlPath, append([]byte(header), data...), 0o644); err != nil {
			return err
		}

		fmt.Println("Config written to", yamlPath)
		return nil
	},
}

func confirm(r *bufio.Reader, message string) bool {
	fmt.Printf("%s (y/N): ", message)
	input, _ := r.ReadString('\n')
	input = strings.ToLower(strings.TrimSpace(input))
	return input == "y" || input == "yes"
}
