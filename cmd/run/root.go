package run

import (
	"os"

	cmdUtil "github.com/ValentinKolb/dBookstore/cmd/util"
	"github.com/ValentinKolb/dBookstore/lib/common"
	"github.com/ValentinKolb/dBookstore/lib/engine"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
)

var (
	log          = logger.GetLogger("cmd")
	runCmdConfig = common.DefaultConfig()
	RunCmd       = &cobra.Command{
		Use:   "run",
		Short: "Start the bookstore console",
		Long:  `Start the bookstore console. Commands are read line by line from stdin and their output is written to stdout; logs go to stderr. The configuration can be set via command line flags or environment variables. The format of the environment variables is DBS_<flag> (e.g. DBS_DATA_DIR=/var/lib/dbs)`,
	}
)

func init() {
	Setup(RunCmd)
}

// Setup adds the console flags to cmd and makes it start the console
func Setup(cmd *cobra.Command) {
	cmd.PreRunE = processConfig
	cmd.RunE = run

	cmdUtil.SetupStoreFlags(cmd)

	key := "prompt"
	cmd.Flags().String(key, "auto", cmdUtil.WrapString("Whether to print a prompt before each line (true, false, auto). auto enables the prompt if stdin is a terminal"))

	key = "metrics"
	cmd.Flags().Bool(key, false, cmdUtil.WrapString("Write per command counters and latency histograms (Prometheus text format) to stderr on exit"))
}

// processConfig reads the configuration from the command line flags and environment variables
func processConfig(cmd *cobra.Command, _ []string) error {
	conf, err := cmdUtil.GetConfig(cmd)
	if err != nil {
		return err
	}
	runCmdConfig = conf
	return common.InitLoggers(runCmdConfig)
}

// run opens the stores and processes stdin until quit, exit or EOF
func run(cmd *cobra.Command, _ []string) error {
	log.Infof("starting with configuration:\n%s", runCmdConfig.String())

	stores, err := cmdUtil.OpenStores(runCmdConfig.DataDir)
	if err != nil {
		log.Errorf("cannot open data directory %s: %v", runCmdConfig.DataDir, err)
		return err
	}

	e := engine.New(stores.Accounts, stores.Books, stores.Ledger)
	if runCmdConfig.Prompt {
		e.SetPrompt("> ")
	}

	err = e.Run(cmd.Context(), os.Stdin, os.Stdout)
	if runCmdConfig.Metrics {
		e.WriteMetrics(os.Stderr)
	}
	if err != nil {
		log.Errorf("reading input: %v", err)
		return err
	}
	log.Infof("shutting down")
	return nil
}
