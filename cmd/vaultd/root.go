package main

import (
	"fmt"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/cmd/vaultd/app"
	"github.com/iov-one/custody/commands/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

// rootState is shared by all subcommands once flags are parsed.
type rootState struct {
	v          *viper.Viper
	configFile string
	conf       *Config
	logger     log.Logger
}

// NewRootCommand creates the root command of the vault daemon.
func NewRootCommand() *cobra.Command {
	st := &rootState{v: newViper()}

	cmd := &cobra.Command{
		Use:           "vaultd",
		Short:         "Vault ABCI application",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(st.v, st.configFile)
			if err != nil {
				return err
			}
			st.conf = conf
			st.logger = newLogger(conf.Log, cmd.OutOrStdout())
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("home", defaultHome(), "directory to store files under")
	flags.String("log-level", "info", "log level (debug|info|error)")
	flags.Bool("log-pretty", false, "human readable logs")
	flags.StringVar(&st.configFile, "config", "", "config file (default <home>/config/vaultd.yaml)")
	for key, name := range map[string]string{
		"home":       "home",
		"log.level":  "log-level",
		"log.pretty": "log-pretty",
	} {
		if err := st.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	cmd.AddCommand(
		newInitCommand(st),
		newStartCommand(st),
		newValidateCommand(st),
		newVersionCommand(),
	)
	return cmd
}

func newInitCommand(st *rootState) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [address] [lamports]",
		Short: "Write the app_state of the genesis file",
		Long: `Write the app_state into <home>/config/genesis.json, created by
tendermint init. Without an address a new key is generated and its
secret printed.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.InitCmd(app.GenInitOptions, st.logger, st.conf.Home, force, args)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "i", false, "overwrite an existing app_state")
	return cmd
}

func newStartCommand(st *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the abci server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.StartCmd(app.GenerateApp, st.logger, st.conf.Home, st.conf.Bind, st.conf.Debug)
		},
	}
	cmd.Flags().String("bind", server.DefaultBind, "address server listens on")
	cmd.Flags().Bool("debug", false, "call stack returned on error")
	if err := st.v.BindPFlag("bind", cmd.Flags().Lookup("bind")); err != nil {
		panic(err)
	}
	if err := st.v.BindPFlag("debug", cmd.Flags().Lookup("debug")); err != nil {
		panic(err)
	}
	return cmd
}

func newValidateCommand(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [genesis.json...]",
		Short: "Check that genesis files initialize the application",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{server.GenesisFile(st.conf.Home)}
			}
			if err := server.ValidateGenesis(app.Initializers(), args); err != nil {
				return err
			}
			st.logger.Info("Genesis valid", "files", len(args))
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the app version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), custody.Version())
			return err
		},
	}
}
