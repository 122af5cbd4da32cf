// Package command turns one input line into a typed, validated command.
//
// Tokenize splits a line at spaces; a double quote toggles quoting and is kept
// in the token, so `-name="War and Peace"` stays one token. Parse validates the
// arity and the syntax of every argument (charsets, lengths, numbers, flags)
// and returns one of the command types of this package. Parse never looks at
// store state: privileges, existing keys and stock are checked by the engine
// and the stores.
//
// Every command reports the minimum privilege required to run it:
//
//	quit, exit, su, register           0
//	logout, passwd, show, buy          1
//	useradd, select, modify, import    3
//	delete, show finance, log, report  7
package command
