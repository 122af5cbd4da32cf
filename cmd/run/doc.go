// Package run implements "dbs run", the interactive bookstore console.
// It is also the default action of the root command.
package run
