// Package cfg provides configuration and command-line interface setup for
// grabarr.
package cfg

import (
	"fmt"
	"os"
	"strings"

	"grabarr/internal/domain/keys"
	"grabarr/internal/validation"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "grabarr",
	Short: "grabarr is a share-URL video downloading tool.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup defaults from config file
		if configFile := viper.GetString(keys.ConfigFile); configFile != "" {
			if _, err := validation.ValidateFile(configFile); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				os.Exit(1)
			}

			if err := loadConfigFile(configFile); err != nil {
				fmt.Fprintf(os.Stderr, "failed loading config file: %v\n", err)
				os.Exit(1)
			}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Lookup("help").Changed {
			return nil
		}
		if err := validation.ValidateViperFlags(); err != nil {
			return err
		}
		viper.Set(keys.Execute, true)
		return nil
	},
}

// InitCommands initializes all commands and their flags.
func InitCommands() error {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("grabarr")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if err := initProgramFlags(rootCmd); err != nil {
		return err
	}

	rootCmd.AddCommand(initHistoryCmd())

	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfigFile loads defaults from any Viper-supported config file.
func loadConfigFile(file string) error {
	viper.SetConfigFile(file)
	if err := viper.ReadInConfig(); err != nil {
		return err
	}
	return nil
}
