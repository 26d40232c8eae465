// Package history journals finished conversion batches in a local SQLite
// database so earlier runs can be reviewed from the CLI.
package history
