// Package util contains helpers shared by the dbs subcommands: help text
// wrapping, configuration loading (flags, DBS_* environment variables and
// .env files) and opening the stores of a data directory.
package util
