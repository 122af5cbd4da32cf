package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/dBookstore/cmd/dump"
	"github.com/ValentinKolb/dBookstore/cmd/run"
	"github.com/ValentinKolb/dBookstore/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command. Without a subcommand it starts the console.
	RootCmd = &cobra.Command{
		Use:   "dbs",
		Short: "bookstore management console",
		Long: fmt.Sprintf(`dBookstore (v%s)

A single-user bookstore management console. Accounts, books, sales and the
audit log are kept in fixed-width record files in the data directory.
Commands are read from stdin, one per line.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dBookstore",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dBookstore v%s\n", Version)
		},
	}
)

func init() {
	// load .env files and DBS_* variables before any command runs
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(run.RunCmd)
	RootCmd.AddCommand(dump.DumpCmd)
	RootCmd.AddCommand(versionCmd)

	// dbs without subcommand behaves like dbs run
	run.Setup(RootCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
