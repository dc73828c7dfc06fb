// Package postgres implements the persistence ports on PostgreSQL via
// pgx. It holds the study storage (decks and quiz history) and the chunk
// store backing retrieval.
package postgres
