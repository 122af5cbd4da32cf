package dump

import (
	"fmt"
	"io"
	"os"

	cmdUtil "github.com/ValentinKolb/dBookstore/cmd/util"
	"github.com/ValentinKolb/dBookstore/lib/common"
	"github.com/ValentinKolb/dBookstore/lib/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Snapshot is the exported content of a data directory. Passwords are never exported.
type Snapshot struct {
	Accounts     []store.Account     `yaml:"accounts"`
	Books        []store.Book        `yaml:"books"`
	Transactions []store.Transaction `yaml:"transactions"`
	Audit        []store.AuditEntry  `yaml:"audit"`
}

var DumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Export the content of the data directory",
	Long:  `Export accounts (without passwords), books, transactions and the audit log of the data directory to stdout. The data directory is only read, except that missing files are created empty.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		conf, err := cmdUtil.GetConfig(cmd)
		if err != nil {
			return err
		}
		return common.InitLoggers(conf)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		format := viper.GetString("format")
		if format != "yaml" {
			return fmt.Errorf("invalid format %s (expected yaml)", format)
		}

		stores, err := cmdUtil.OpenStores(viper.GetString("data-dir"))
		if err != nil {
			return err
		}
		all, err := stores.Books.Query(store.BookFilter{})
		if err != nil {
			return err
		}
		return Write(os.Stdout, Snapshot{
			Accounts:     stores.Accounts.All(),
			Books:        all,
			Transactions: stores.Ledger.Transactions(),
			Audit:        stores.Ledger.Audit(),
		})
	},
}

func init() {
	cmdUtil.SetupStoreFlags(DumpCmd)

	key := "format"
	DumpCmd.Flags().String(key, "yaml", cmdUtil.WrapString("Output format (yaml)"))
}

// Write encodes s as YAML
func Write(w io.Writer, s Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}
