// Package store persists articles, normalized text, the fitted vocabulary,
// feature vectors, and similarity edges behind a small tabular interface.
//
// Two backends are supported: SQLite (the default, a single file under the
// data directory) and Postgres. All queries are written with ?-style
// placeholders and rebound for Postgres, and write paths share two
// primitives with fixed semantics: AppendNewRows skips rows whose id
// already exists, and ReplaceTable truncates then inserts inside one
// transaction.
package store
