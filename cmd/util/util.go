package util

import (
	"os"
	"strings"

	"github.com/ValentinKolb/dBookstore/lib/common"
	"github.com/ValentinKolb/dBookstore/lib/store/account"
	"github.com/ValentinKolb/dBookstore/lib/store/book"
	"github.com/ValentinKolb/dBookstore/lib/store/ledger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// --------------------------------------------------------------------------
// Configuration
// --------------------------------------------------------------------------

// InitConfig loads .env files and binds environment variables with the DBS_ prefix
func InitConfig() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetEnvPrefix("dbs")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// SetupStoreFlags adds the flags shared by all commands that open the data directory
func SetupStoreFlags(cmd *cobra.Command) {
	key := "data-dir"
	cmd.Flags().String(key, "data", WrapString("Directory holding the account, book, transaction and audit files. It is created if missing"))

	key = "log-level"
	cmd.Flags().String(key, "warn", WrapString("LogLevel is the level at which logs will be written to stderr (debug, info, warn, error)"))
}

// GetConfig binds the flags of cmd to viper and reads the resulting configuration
func GetConfig(cmd *cobra.Command) (common.Config, error) {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return common.Config{}, err
	}

	conf := common.DefaultConfig()
	conf.DataDir = viper.GetString("data-dir")
	conf.LogLevel = viper.GetString("log-level")
	conf.Metrics = viper.GetBool("metrics")

	switch prompt := strings.ToLower(viper.GetString("prompt")); prompt {
	case "", "auto":
		conf.Prompt = term.IsTerminal(int(os.Stdin.Fd()))
	default:
		conf.Prompt = viper.GetBool("prompt")
	}

	if err := conf.Validate(); err != nil {
		return common.Config{}, err
	}
	return conf, nil
}

// --------------------------------------------------------------------------
// Stores
// --------------------------------------------------------------------------

// Stores bundles the three stores of one data directory
type Stores struct {
	Accounts *account.Store
	Books    *book.Store
	Ledger   *ledger.Store
}

// OpenStores opens (and if needed creates) all stores under dir
func OpenStores(dir string) (*Stores, error) {
	accounts, err := account.Open(dir)
	if err != nil {
		return nil, err
	}
	books, err := book.Open(dir)
	if err != nil {
		return nil, err
	}
	l, err := ledger.Open(dir)
	if err != nil {
		return nil, err
	}
	return &Stores{Accounts: accounts, Books: books, Ledger: l}, nil
}
