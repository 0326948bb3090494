package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kessdev/codegraph/internal/errs"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// exit codes, checked by CI and scripting callers.
const (
	exitOK            = 0
	exitBuildFailed   = 1
	exitUnresolved    = 2
	exitConfigError   = 3
	exitInternalError = 4
)

// exitCodeFor classifies a returned error into one of the codes above,
// mirroring the teacher's plain os.Exit(1)-on-any-error root.go but
// generalized since a partial build (some names never resolved) is a
// meaningfully different outcome from a build that never produced a graph
// at all.
func exitCodeFor(err error) int {
	if err == nil {
		return exitOK
	}
	switch {
	case errors.Is(err, errUnresolvedReferences):
		return exitUnresolved
	case errors.Is(err, errConfigInvalid):
		return exitConfigError
	case errors.Is(err, errs.ErrUnsupportedLang), errors.Is(err, errs.ErrFileNotFound), errors.Is(err, errs.ErrCancelled):
		return exitBuildFailed
	default:
		return exitInternalError
	}
}

var rootCmd = &cobra.Command{
	Use:     "codegraph",
	Short:   "Builds a multi-depth architectural graph for a source repository",
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().String("store", ".codegraph.db", "path to the run's BadgerDB store")
	rootCmd.PersistentFlags().Int("workers", 4, "parallel per-file workers")
	viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(queryCmd)
}

func initConfig() {
	viper.SetConfigName(".codegraph")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")

	viper.SetEnvPrefix("CODEGRAPH")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
