// Package cmd provides the command-line interface for Chisel with layered
// configuration.
//
// Configuration sources in precedence order:
//
//	1. Command-line flags (--port, --log-level, ...)
//	2. CHISEL_ prefixed environment variables (CHISEL_SERVER_PORT, ...)
//	3. The .chisel.yml configuration file
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "chisel",
	Short: "A visual editing backend for JSX/TSX components",
	Long: `Chisel turns JSX/TSX component source into an editable structure and back
again. It extracts elements and their editable properties, applies visual
edits as surgical source mutations, and renders previews either structurally
or through an embedded compile-and-execute sandbox.

Quick Start:
  chisel serve                    Start the editor backend
  chisel list                     List discovered components
  chisel extract Button.tsx       Print a component's structure
  chisel preview Button.tsx       Print the structural preview HTML`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .chisel.yml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")

	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig reads in the config file and CHISEL_ environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if env := os.Getenv("CHISEL_CONFIG_FILE"); env != "" {
		viper.SetConfigFile(env)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(".chisel")
		viper.SetConfigType("yml")
	}

	viper.SetEnvPrefix("CHISEL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
