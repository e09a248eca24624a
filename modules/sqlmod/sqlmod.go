// Package sqlmod exposes a SQLite database to VM scripts through the
// bridge: connections travel as userdata, queries and statements as host
// functions, result rows as tables.
package sqlmod

import (
	"database/sql"
	"fmt"
	"reflect"

	"github.com/tliron/commonlog"
	_ "modernc.org/sqlite"

	"github.com/chazu/selene/bridge"
	_ "github.com/chazu/selene/shape"
	"github.com/chazu/selene/vm"
)

var log = commonlog.GetLogger("selene.sql")

// Conn wraps an open database handle. VM scripts hold it as userdata.
type Conn struct {
	db   *sql.DB
	path string
}

// Path returns the database path the connection was opened with.
func (c *Conn) Path() string {
	return c.path
}

// Register binds the sql globals into a state. The path configures where
// sqlOpen with an empty argument points (usually from selene.toml).
func Register(s *vm.State, defaultPath string) {
	s.Types().Register(reflect.TypeOf((*Conn)(nil)), "sql.Conn")

	setFn(s, "sqlOpen", func(path string) (*Conn, error) {
		if path == "" {
			path = defaultPath
		}
		return Open(path)
	})
	setFn(s, "sqlExec", Exec)
	setFn(s, "sqlQuery", Query)
	setFn(s, "sqlClose", Close)
}

// setFn pushes a Go function through the bridge and binds it to a global.
func setFn(s *vm.State, name string, fn interface{}) {
	bridge.PushReflect(s, reflect.ValueOf(fn))
	v := s.At(-1)
	s.PopN(1)
	s.SetGlobal(name, v)
}

// Open opens (or creates) a SQLite database.
func Open(path string) (*Conn, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database %s: %w", path, err)
	}
	log.Infof("opened database %s", path)
	return &Conn{db: db, path: path}, nil
}

// Exec runs a statement and returns the number of affected rows.
func Exec(c *Conn, stmt string) (int64, error) {
	res, err := c.db.Exec(stmt)
	if err != nil {
		return 0, fmt.Errorf("exec: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("exec: %w", err)
	}
	log.Debugf("exec affected %d rows", n)
	return n, nil
}

// Query runs a query and returns every row as a column→value table.
// Values come back as strings; NULL becomes the empty string.
func Query(c *Conn, query string) ([]map[string]string, error) {
	rows, err := c.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}

	var out []map[string]string
	for rows.Next() {
		cells := make([]sql.NullString, len(cols))
		dest := make([]interface{}, len(cols))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("query scan: %w", err)
		}

		row := make(map[string]string, len(cols))
		for i, col := range cols {
			row[col] = cells[i].String
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	return out, nil
}

// Close closes a connection. Safe to call once per handle.
func Close(c *Conn) error {
	log.Infof("closing database %s", c.path)
	return c.db.Close()
}
