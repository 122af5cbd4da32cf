// Package cmd implements the command-line interface of dBookstore.
//
// The package is organized into several subpackages:
//
//   - run: the interactive console (also the default action of dbs)
//   - dump: read-only YAML export of a data directory
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// All commands read their configuration from flags, from DBS_* environment
// variables and from .env / .env.local in the working directory.
//
// See dbs -help for a list of all commands.
package cmd
