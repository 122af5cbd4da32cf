package engine

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/ValentinKolb/dBookstore/lib/command"
	"github.com/ValentinKolb/dBookstore/lib/store"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("engine")

// Invalid is printed for every rejected line
const Invalid = "Invalid"

// Result is the outcome of one processed line
type Result struct {
	// Output is written to the console verbatim (including newlines)
	Output string
	// Quit is set by quit and exit
	Quit bool
	// Err is the reason of a rejection, nil on success
	Err error
}

// Engine dispatches command lines to the stores
type Engine struct {
	accounts store.IAccountStore
	books    store.IBookStore
	ledger   store.ILedgerStore
	prompt   string
	metrics  *metrics.Set
}

// New creates an engine over the given stores
func New(accounts store.IAccountStore, books store.IBookStore, ledger store.ILedgerStore) *Engine {
	return &Engine{
		accounts: accounts,
		books:    books,
		ledger:   ledger,
		metrics:  metrics.NewSet(),
	}
}

// SetPrompt sets the text written by Run before each line is read ("" disables it)
func (e *Engine) SetPrompt(prompt string) {
	e.prompt = prompt
}

// --------------------------------------------------------------------------
// Line Processing
// --------------------------------------------------------------------------

// Process executes a single command line
func (e *Engine) Process(line string) Result {
	line = strings.TrimSpace(line)
	if line == "" {
		return Result{}
	}

	start := time.Now()
	name, res := e.process(line)
	e.observe(name, res, start)
	return res
}

// process returns the name of the command (or "unknown") and the result of line
func (e *Engine) process(line string) (string, Result) {
	if e.accounts.Privilege() >= store.PrivCustomer {
		if err := e.ledger.RecordAudit(e.accounts.CurrentUser(), line); err != nil {
			return "unknown", e.reject(line, err)
		}
	}

	cmd, err := command.Parse(line)
	if err != nil {
		return "unknown", e.reject(line, err)
	}
	if have := e.accounts.Privilege(); have < cmd.MinPrivilege() {
		return cmd.Name(), e.reject(line, store.NewError(store.RetCPermissionDenied,
			"%s requires privilege %d, have %d", cmd.Name(), cmd.MinPrivilege(), have))
	}
	if _, ok := cmd.(command.Quit); ok {
		return cmd.Name(), Result{Quit: true}
	}

	out, err := e.dispatch(cmd)
	if err != nil {
		return cmd.Name(), e.reject(line, err)
	}
	return cmd.Name(), Result{Output: out}
}

// Run processes lines from r until EOF, quit or a done context and writes all output to w.
// Lines have no length limit.
func (e *Engine) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	in := bufio.NewReader(r)
	out := bufio.NewWriter(w)
	defer out.Flush()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.prompt != "" {
			if _, err := out.WriteString(e.prompt); err != nil {
				return err
			}
			if err := out.Flush(); err != nil {
				return err
			}
		}

		line, readErr := in.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return readErr
		}
		if readErr == io.EOF && line == "" {
			return nil
		}

		res := e.Process(line)
		if res.Quit {
			return nil
		}
		if _, err := out.WriteString(res.Output); err != nil {
			return err
		}
		if err := out.Flush(); err != nil {
			return err
		}
		if readErr == io.EOF {
			return nil
		}
	}
}

func (e *Engine) reject(line string, err error) Result {
	if errors.Is(err, command.ErrSyntax) || store.CodeOf(err) != store.RetCInternalError {
		log.Debugf("rejected %q: %v", line, err)
	} else {
		log.Errorf("%q: %v", line, err)
	}
	return Result{Output: Invalid + "\n", Err: err}
}
