package core

// NormalizationStrategy says how a backend folds unquoted identifiers.
// Quoted identifiers built by the query builder are never folded.
type NormalizationStrategy int

const (
	// NormLowercase folds unquoted identifiers to lowercase (postgres).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase folds unquoted identifiers to uppercase.
	NormUppercase
	// NormCaseSensitive keeps identifiers exactly as written.
	NormCaseSensitive
	// NormCaseInsensitive compares identifiers in lowercase (duckdb, sqlite).
	NormCaseInsensitive
)

// PlaceholderStyle is the bound-parameter syntax of a backend.
type PlaceholderStyle int

const (
	// PlaceholderQuestion writes every parameter as ? (duckdb, sqlite).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar numbers parameters $1, $2, ... (postgres).
	PlaceholderDollar
)

// IdentifierConfig holds the quoting rules for table and column names.
type IdentifierConfig struct {
	Quote         string // opening quote, e.g. "
	QuoteEnd      string // closing quote, usually the same as Quote
	Escape        string // how a quote inside a name is written, e.g. ""
	Normalization NormalizationStrategy
}
