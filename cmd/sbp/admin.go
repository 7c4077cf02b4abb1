package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sbp-go/internal/app"
	"sbp-go/internal/config"
)

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View the operation log",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd.Context(), cmd, "history")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.GetHistory(limit)
		if err != nil {
			return err
		}
		if len(ops) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}

		for _, op := range ops {
			duration := ""
			if op.FinishedAt != nil {
				duration = op.Duration().Truncate(time.Millisecond).String()
			}
			fmt.Printf("#%d  %-15s  %s  %s  %-8s  %s\n",
				op.ID,
				op.Operation,
				op.StartedAt.Local().Format("2006-01-02 15:04:05"),
				statusStyle(op.Status).Render(fmt.Sprintf("%-7s", op.Status)),
				duration,
				dimStyle.Render(op.Parameters),
			)
		}
		return nil
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := app.DefaultPaths()
		if err != nil {
			return fmt.Errorf("getting defaults: %w", err)
		}

		cfg := config.NewConfig(paths.BaseDir)
		if err := config.Init(paths.ConfigPath, cfg); err != nil {
			return err
		}

		fmt.Printf("Configuration initialized at %s\n", paths.ConfigPath)
		fmt.Printf("Base Dir: %s\n", paths.BaseDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := app.DefaultPaths()
		if err != nil {
			return fmt.Errorf("getting defaults: %w", err)
		}
		cfg, found, err := config.Load(paths.ConfigPath, paths.BaseDir)
		if err != nil {
			return err
		}

		source := paths.ConfigPath
		if !found {
			source = "built-in defaults (run `sbp config init` to write them)"
		}
		fmt.Println(dimStyle.Render("# Configuration from " + source))

		m := &config.Manager{}
		return m.Write(os.Stdout, cfg)
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that every destination is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cmd, "config check")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ValidateDestinations(cmd.Context()); err != nil {
			return err
		}
		for _, name := range a.Destinations() {
			fmt.Println(successStyle.Render("ok  ") + name)
		}
		return nil
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage archive encryption keys",
}

var configKeysInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate the age key pair used to seal archives",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		if app.KeysConfigured(cfg) {
			return fmt.Errorf("keys already exist at %s", cfg.Encryption.PrivateKeyPath)
		}

		passphrase, err := readNewPassphrase()
		if err != nil {
			return err
		}
		if err := app.InitKeys(cfg, passphrase); err != nil {
			return fmt.Errorf("initializing keys: %w", err)
		}

		fmt.Printf("Public key:  %s\n", cfg.Encryption.PublicKeyPath)
		fmt.Printf("Private key: %s\n", cfg.Encryption.PrivateKeyPath)
		if cfg.Encryption.Type != "age" {
			fmt.Println(warningStyle.Render(`Set [encryption] type = "age" in the config to seal new archives.`))
		}
		return nil
	},
}

// decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt ARCHIVE",
	Short: "Unseal an encrypted structure archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		if out == "" {
			out = app.DecryptedName(args[0])
		}

		passphrase, err := readPassphrase("Passphrase: ")
		if err != nil {
			return err
		}
		if err := app.DecryptArchive(cfg, args[0], out, passphrase); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("Decrypted to " + out))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of operations to show (0 for all)")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configCheckCmd)
	configCmd.AddCommand(configKeysCmd)
	configKeysCmd.AddCommand(configKeysInitCmd)

	decryptCmd.Flags().StringP("out", "o", "", "Output path (default: ARCHIVE without its sealing extension)")
}
