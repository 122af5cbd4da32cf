// Package dump implements "dbs dump", a read-only YAML export of a data directory.
package dump
