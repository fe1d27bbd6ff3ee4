package cmd

import (
	"fmt"

	"github.com/alexiusacademia/goprofile/internal/config"
	"github.com/spf13/cobra"
)

var configInitPath string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the goprofile configuration file",
	Long: `Manage the YAML configuration file.

Settings can also be overridden with environment variables or a .env file:
  ` + config.EnvCroppedOutput + `  cropped image output
  ` + config.EnvMarkedOutput + `   crosshair image output
  ` + config.EnvDiagramOutput + `  profile diagram output
  ` + config.EnvUnits + `          unit label
  ` + config.EnvVerbose + `        debug logging (true/false)`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default values",
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.CreateDefaultConfigFile(configInitPath); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Error writing config: %v\n", err)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config written to: %s\n", configInitPath)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().StringVarP(&configInitPath, "path", "p", config.DefaultConfigFile, "Where to write the config file")
}
