// Package psqlbuilder wraps squirrel with PostgreSQL dollar placeholders so
// repositories don't repeat the placeholder format on every query.
package psqlbuilder

import "github.com/Masterminds/squirrel"

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select starts a SELECT query with $N placeholders.
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert starts an INSERT query with $N placeholders.
func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}

// Update starts an UPDATE query with $N placeholders.
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Delete starts a DELETE query with $N placeholders.
func Delete(table string) squirrel.DeleteBuilder {
	return builder.Delete(table)
}
