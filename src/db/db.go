package db

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"git.handmade.network/hmn/ltree/src/oops"
	"github.com/jackc/pgx/v5"
)

/*
A general error to be used when no results are found. This is the error returned
by QueryOne, and can generally be used by other database helpers that fetch a single
result but find nothing.
*/
var NotFound = errors.New("not found")

/*
Performs a SQL query and returns a slice of all the result rows. The query is just plain SQL, but make sure to read the package documentation for details. You must explicitly provide the type argument - this is how it knows what Go type to map the results to, and it cannot be inferred.

T must be a struct with `db` tags. Columns are matched to fields by name. For single columns, use QueryScalar.
*/
func Query[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) ([]*T, error) {
	var destExample T
	compiled := compileQuery(query, reflect.TypeOf(destExample))

	rows, err := conn.Query(ctx, compiled, args...)
	if err != nil {
		return nil, oops.New(err, "failed to run query")
	}
	result, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, oops.New(err, "failed to read query results")
	}
	return result, nil
}

/*
Identical to Query, but panics if there was an error.
*/
func MustQuery[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) []*T {
	result, err := Query[T](ctx, conn, query, args...)
	if err != nil {
		panic(err)
	}
	return result
}

/*
Identical to Query, but returns only the first result row. If there are no
rows in the result set, returns NotFound.
*/
func QueryOne[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) (*T, error) {
	result, err := Query[T](ctx, conn, query, args...)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, NotFound
	}
	return result[0], nil
}

/*
Identical to Query, but for queries that return a single column. Returns
concrete values instead of pointers.
*/
func QueryScalar[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) ([]T, error) {
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, oops.New(err, "failed to run query")
	}
	result, err := pgx.CollectRows(rows, pgx.RowTo[T])
	if err != nil {
		return nil, oops.New(err, "failed to read query results")
	}
	return result, nil
}

/*
Identical to QueryScalar, but panics if there was an error.
*/
func MustQueryScalar[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) []T {
	result, err := QueryScalar[T](ctx, conn, query, args...)
	if err != nil {
		panic(err)
	}
	return result
}

/*
Identical to QueryScalar, but returns only the first result value. If there are
no rows in the result set, returns NotFound.
*/
func QueryOneScalar[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) (T, error) {
	var zero T
	result, err := QueryScalar[T](ctx, conn, query, args...)
	if err != nil {
		return zero, err
	}
	if len(result) == 0 {
		return zero, NotFound
	}
	return result[0], nil
}

var reColumnsPlaceholder = regexp.MustCompile(`\$columns({(.*?)})?`)

/*
Expands the $columns placeholder into the `db` tags of destType. Queries
without the placeholder are returned unchanged.
*/
func compileQuery(query string, destType reflect.Type) string {
	columnsMatch := reColumnsPlaceholder.FindStringSubmatch(query)
	if columnsMatch == nil {
		return query
	}

	if destType.Kind() != reflect.Struct {
		panic("$columns can only be used when querying into a struct")
	}

	prefix := columnsMatch[2]
	columnNames := getColumnNames(destType)

	columns := make([]string, 0, len(columnNames))
	for _, name := range columnNames {
		if prefix != "" {
			name = prefix + "." + name
		}
		columns = append(columns, name)
	}

	return reColumnsPlaceholder.ReplaceAllString(query, strings.Join(columns, ", "))
}

func getColumnNames(destType reflect.Type) []string {
	var names []string
	for _, field := range reflect.VisibleFields(destType) {
		if field.Anonymous {
			continue
		}
		columnName := field.Tag.Get("db")
		if columnName == "" || columnName == "-" {
			continue
		}
		if !field.IsExported() {
			panic(fmt.Errorf("field '%s' in type %s has a db tag but is not exported", field.Name, destType))
		}
		names = append(names, columnName)
	}
	return names
}
