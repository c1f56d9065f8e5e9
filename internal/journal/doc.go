// Package journal records parse outcomes in a SQLite database.
//
// Each entry stores the source name, the SHA-256 of the parsed content,
// whether parsing succeeded, the error and its position on failure, the
// node count on success and the time taken. The ember CLI records entries
// with --record or when the journal is enabled in the configuration, and
// lists them with the history command.
package journal
