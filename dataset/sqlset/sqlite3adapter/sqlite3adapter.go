/*
Package sqlite3adapter provides an implementation of the Adapter
interface in the sqlset package that works over an SQLite3 database
file.
*/
package sqlite3adapter

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/sapling/dataset/sqlset"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

/*
MaxTupleInsertionsPerStatement is the maximum number of tuples that
are allowed to be added with a single insert command with the
AddTuples method of the adapter. Trying to add more will result in
making more insertion commands.
*/
const MaxTupleInsertionsPerStatement = 10

type adapter struct {
	db *sql.DB
}

/*
New takes a path to an SQLite3 database file and a limit for the
number of open connections, and returns an Adapter that works on the
file's database or an error if it fails to open as an sqlite3
database. A non-positive limit leaves connections unlimited.
*/
func New(path string, maxConns int) (sqlset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	return &adapter{db}, nil
}

func (a *adapter) ColumnName(attributeName string) (string, error) {
	if attributeName == "id" {
		return "", fmt.Errorf("'%s' is reserved and cannot be used as attribute name", attributeName)
	}
	if strings.ContainsAny(attributeName, `"`) {
		return "", fmt.Errorf(`attribute name '%s' contains invalid character '"'`, attributeName)
	}
	return attributeName, nil
}

func (a *adapter) CreateTupleTable(ctx context.Context, columns []string) error {
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString("CREATE TABLE IF NOT EXISTS tuples(")
	for _, c := range columns {
		createStmtBuf.WriteString(fmt.Sprintf(`"%s" TEXT NOT NULL, `, c))
	}
	createStmtBuf.WriteString(`"id" INTEGER PRIMARY KEY AUTOINCREMENT)`)
	createStmt, err := a.db.PrepareContext(ctx, createStmtBuf.String())
	if err != nil {
		return fmt.Errorf("preparing tuples creation statement: %v", err)
	}
	defer createStmt.Close()
	_, err = createStmt.ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("ensuring tuples table exists: %v", err)
	}
	return nil
}

func (a *adapter) AddTuples(ctx context.Context, columns []string, rows [][]string) (int, error) {
	var inserted int
	for inserted < len(rows) {
		chunk := rows[inserted:]
		if len(chunk) > MaxTupleInsertionsPerStatement {
			chunk = chunk[:MaxTupleInsertionsPerStatement]
		}
		if err := a.insertChunk(ctx, columns, chunk); err != nil {
			return inserted, fmt.Errorf("inserting tuples %d to %d: %v", inserted+1, inserted+len(chunk), err)
		}
		inserted += len(chunk)
	}
	return inserted, nil
}

func (a *adapter) IterateOnTuples(ctx context.Context, columns []string, lambda func(int, []string) (bool, error)) error {
	query := fmt.Sprintf(`SELECT "%s" FROM tuples ORDER BY "id"`, strings.Join(columns, `", "`))
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for j := 0; rows.Next(); j++ {
		values := make([]string, len(columns))
		scans := make([]interface{}, len(columns))
		for i := range values {
			scans[i] = &values[i]
		}
		if err = rows.Scan(scans...); err != nil {
			return err
		}
		ok, err := lambda(j, values)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return rows.Err()
}

func (a *adapter) CountTuples(ctx context.Context) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tuples").Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (a *adapter) Close() error {
	return a.db.Close()
}

func (a *adapter) insertChunk(ctx context.Context, columns []string, chunk [][]string) error {
	var insertStmtBuf bytes.Buffer
	insertStmtBuf.WriteString(`INSERT INTO tuples ("`)
	insertStmtBuf.WriteString(strings.Join(columns, `", "`))
	insertStmtBuf.WriteString(`") VALUES `)
	placeholders := fmt.Sprintf("(?%s)", strings.Repeat(", ?", len(columns)-1))
	values := make([]interface{}, 0, len(chunk)*len(columns))
	for i, row := range chunk {
		if i > 0 {
			insertStmtBuf.WriteString(", ")
		}
		insertStmtBuf.WriteString(placeholders)
		for _, v := range row {
			values = append(values, v)
		}
	}
	insertStmt, err := a.db.PrepareContext(ctx, insertStmtBuf.String())
	if err != nil {
		return fmt.Errorf("preparing insert command for %d tuples: %v", len(chunk), err)
	}
	defer insertStmt.Close()
	_, err = insertStmt.ExecContext(ctx, values...)
	return err
}
