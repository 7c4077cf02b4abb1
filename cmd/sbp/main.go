package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sbp-go/internal/app"
	"sbp-go/internal/config"
)

func main() {
	// Destination credentials may live in a local .env file.
	if err := loadEnvFile(".env"); err != nil {
		fmt.Fprintln(os.Stderr, warningStyle.Render("Warning: ")+err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

// loadEnvFile loads variables from path without overriding the environment.
// A missing file is not an error.
func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

// loadConfig reads the config file, falling back to built-in defaults when
// none has been written yet.
func loadConfig() (*config.Config, app.Paths, error) {
	paths, err := app.DefaultPaths()
	if err != nil {
		return nil, paths, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, _, err := config.Load(paths.ConfigPath, paths.BaseDir)
	if err != nil {
		return nil, paths, fmt.Errorf("reading config: %w", err)
	}
	return cfg, paths, nil
}

// newApp reads the config and creates an SBPApp. The caller must defer a.Close().
// operation identifies the CLI command being run (e.g. "create", "clients add").
func newApp(ctx context.Context, cmd *cobra.Command, operation string) (*app.SBPApp, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	opts := app.Options{Verbose: verbose}
	if f := cmd.Flags().Lookup("output"); f != nil {
		opts.OutputDir = f.Value.String()
	}

	a, err := app.NewSBPApp(ctx, cfg, operation, opts)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

var rootCmd = &cobra.Command{
	Use:           "sbp",
	Short:         "Creative project folder structures for photo and video work",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print debug logs to stderr")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(assetsCmd)
	rootCmd.AddCommand(camerasCmd)
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(decryptCmd)
}
