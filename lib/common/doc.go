// Package common holds the pieces shared by the command line tools and the
// library packages of dBookstore.
//
// Key Components:
//
//   - Config: runtime configuration of the bookstore (data directory, log
//     level, prompt). Filled from cobra flags, environment variables (DBS_*)
//     and .env files by the cmd package.
//
//   - Logger: a dragonboat logger.ILogger implementation that writes
//     "LEVEL | package | message" lines to stderr. Every package obtains its
//     logger with logger.GetLogger(name); InitLoggers installs the factory
//     and sets the level of all known package loggers.
//
// Stdout is reserved for command output, so nothing in this package writes to it.
package common
