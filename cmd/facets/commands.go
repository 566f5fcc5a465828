package main

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/terraincognita07/facets/internal/cli"
)

type commandOptions struct {
	dbPath         string
	identitiesPath string
	themesPath     string
	seedOnStart    bool
	email          string
	prompt         bool
}

func newRootCommand() *cobra.Command {
	options := &commandOptions{}

	root := &cobra.Command{
		Use:           "facets",
		Short:         "Identity, project and task tracking server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(options)
		},
	}
	addDatabaseFlag(root.PersistentFlags(), options)
	addSeedFlags(root.Flags(), options)
	root.Flags().BoolVar(&options.seedOnStart, "seed", true, "Store missing reference data before serving")

	root.AddCommand(newServeCommand(options))
	root.AddCommand(newSeedCommand(options))
	root.AddCommand(newResetPasswordCommand(options))
	root.AddCommand(newMigrationsCommand(options))
	return root
}

func newServeCommand(options *commandOptions) *cobra.Command {
	command := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(options)
		},
	}
	addSeedFlags(command.Flags(), options)
	command.Flags().BoolVar(&options.seedOnStart, "seed", true, "Store missing reference data before serving")
	return command
}

func newSeedCommand(options *commandOptions) *cobra.Command {
	command := &cobra.Command{
		Use:   "seed",
		Short: "Store missing identity templates and themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunSeedCommand(cli.SeedOptions{
				DBPath:         options.dbPath,
				IdentitiesPath: options.identitiesPath,
				ThemesPath:     options.themesPath,
				Out:            cmd.OutOrStdout(),
			})
		},
	}
	addSeedFlags(command.Flags(), options)
	return command
}

func newResetPasswordCommand(options *commandOptions) *cobra.Command {
	command := &cobra.Command{
		Use:   "reset-password",
		Short: "Replace a profile's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if options.email == "" {
				return errors.New("--email is required")
			}
			policy, err := resolvePasswordPolicy()
			if err != nil {
				return err
			}
			return cli.RunResetPasswordCommand(cli.ResetPasswordOptions{
				DBPath: options.dbPath,
				Email:  options.email,
				Prompt: options.prompt,
				Policy: policy,
				Out:    cmd.OutOrStdout(),
			})
		},
	}
	command.Flags().StringVar(&options.email, "email", "", "Email of the profile to reset")
	command.Flags().BoolVar(&options.prompt, "prompt", false, "Read the new password from the terminal instead of generating one")
	return command
}

func newMigrationsCommand(options *commandOptions) *cobra.Command {
	command := &cobra.Command{
		Use:   "migrations",
		Short: "Inspect schema migrations",
	}
	command.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List applied migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunMigrationStatusCommand(options.dbPath, cmd.OutOrStdout())
		},
	})
	return command
}

func addDatabaseFlag(flags *pflag.FlagSet, options *commandOptions) {
	flags.StringVar(&options.dbPath, "db", getEnv("DB_PATH", filepath.Join("data", "facets.db")), "SQLite database path")
}

func addSeedFlags(flags *pflag.FlagSet, options *commandOptions) {
	flags.StringVar(&options.identitiesPath, "identities", getEnv("SEED_IDENTITIES_PATH", ""), "Identity templates file (.yaml, .json or .jsonc)")
	flags.StringVar(&options.themesPath, "themes", getEnv("SEED_THEMES_PATH", ""), "Themes file (.yaml, .json or .jsonc)")
}
