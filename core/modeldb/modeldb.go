// Package modeldb stores model snapshots in a local SQLite library.
//
// The library is a single database file holding any number of models keyed
// by id. Bounds are stored as text so infinite sides survive the round trip;
// objective and constraint coefficients are finite by model validation and
// stay numeric.
package modeldb

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/FocuswithJustin/mpexport/core/errors"
	"github.com/FocuswithJustin/mpexport/core/mpmodel"
)

const schema = `
CREATE TABLE IF NOT EXISTS models (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	maximize   INTEGER NOT NULL,
	obj_offset REAL NOT NULL,
	created    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS variables (
	model_id  TEXT NOT NULL,
	idx       INTEGER NOT NULL,
	name      TEXT NOT NULL,
	lower     TEXT NOT NULL,
	upper     TEXT NOT NULL,
	is_int    INTEGER NOT NULL,
	objective REAL NOT NULL,
	PRIMARY KEY (model_id, idx)
);
CREATE TABLE IF NOT EXISTS constraints (
	model_id TEXT NOT NULL,
	idx      INTEGER NOT NULL,
	name     TEXT NOT NULL,
	lower    TEXT NOT NULL,
	upper    TEXT NOT NULL,
	PRIMARY KEY (model_id, idx)
);
CREATE TABLE IF NOT EXISTS coefficients (
	model_id       TEXT NOT NULL,
	constraint_idx INTEGER NOT NULL,
	position       INTEGER NOT NULL,
	var_idx        INTEGER NOT NULL,
	coef           REAL NOT NULL,
	PRIMARY KEY (model_id, constraint_idx, position)
);
`

var childTables = []string{"variables", "constraints", "coefficients"}

// DB is an open model library.
type DB struct {
	sql *sql.DB
}

// Entry summarizes one stored model for listings.
type Entry struct {
	ID          string
	Name        string
	Variables   int
	Constraints int
	Created     time.Time
}

// Open opens the library at path, creating the schema when missing.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.NewIO("migrate", path, err)
	}
	return &DB{sql: db}, nil
}

// Close closes the library.
func (db *DB) Close() error {
	return db.sql.Close()
}

func encodeBound(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func decodeBound(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// Save stores m under id, replacing any previous model with the same id.
// A blank id is assigned a fresh uuid. Returns the id the model is stored
// under.
func (db *DB) Save(m *mpmodel.Model, id string) (string, error) {
	if id == "" {
		id = uuid.New().String()
	}

	tx, err := db.sql.Begin()
	if err != nil {
		return "", errors.Wrap(err, "save model")
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM models WHERE id = ?", id); err != nil {
		return "", errors.Wrap(err, "save model")
	}
	for _, table := range childTables {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE model_id = ?", id); err != nil {
			return "", errors.Wrap(err, "save model")
		}
	}

	created := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.Exec(
		"INSERT INTO models (id, name, maximize, obj_offset, created) VALUES (?, ?, ?, ?, ?)",
		id, m.Name, m.Maximize, m.Offset, created,
	); err != nil {
		return "", errors.Wrap(err, "save model")
	}

	for i := range m.Variables {
		v := &m.Variables[i]
		if _, err := tx.Exec(
			"INSERT INTO variables (model_id, idx, name, lower, upper, is_int, objective) VALUES (?, ?, ?, ?, ?, ?, ?)",
			id, i, v.Name, encodeBound(v.Lower), encodeBound(v.Upper), v.Integer, v.Objective,
		); err != nil {
			return "", errors.Wrap(err, "save variable")
		}
	}
	for ci := range m.Constraints {
		c := &m.Constraints[ci]
		if _, err := tx.Exec(
			"INSERT INTO constraints (model_id, idx, name, lower, upper) VALUES (?, ?, ?, ?, ?)",
			id, ci, c.Name, encodeBound(c.Lower), encodeBound(c.Upper),
		); err != nil {
			return "", errors.Wrap(err, "save constraint")
		}
		for ti, t := range c.Terms {
			if _, err := tx.Exec(
				"INSERT INTO coefficients (model_id, constraint_idx, position, var_idx, coef) VALUES (?, ?, ?, ?, ?)",
				id, ci, ti, t.Var, t.Coef,
			); err != nil {
				return "", errors.Wrap(err, "save coefficient")
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", errors.Wrap(err, "save model")
	}
	return id, nil
}

// Load reads the model stored under id.
func (db *DB) Load(id string) (*mpmodel.Model, error) {
	m := &mpmodel.Model{}
	err := db.sql.QueryRow(
		"SELECT name, maximize, obj_offset FROM models WHERE id = ?", id,
	).Scan(&m.Name, &m.Maximize, &m.Offset)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFound("model", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "load model")
	}

	if m.Variables, err = db.loadVariables(id); err != nil {
		return nil, err
	}
	if m.Constraints, err = db.loadConstraints(id); err != nil {
		return nil, err
	}
	if err := db.loadCoefficients(id, m.Constraints); err != nil {
		return nil, err
	}
	return m, nil
}

func (db *DB) loadVariables(id string) ([]mpmodel.Variable, error) {
	rows, err := db.sql.Query(
		"SELECT name, lower, upper, is_int, objective FROM variables WHERE model_id = ? ORDER BY idx", id,
	)
	if err != nil {
		return nil, errors.Wrap(err, "load variables")
	}
	defer rows.Close()

	var vars []mpmodel.Variable
	for rows.Next() {
		var v mpmodel.Variable
		var lower, upper string
		if err := rows.Scan(&v.Name, &lower, &upper, &v.Integer, &v.Objective); err != nil {
			return nil, errors.Wrap(err, "load variables")
		}
		if v.Lower, err = decodeBound(lower); err != nil {
			return nil, errors.Wrap(err, "load variables")
		}
		if v.Upper, err = decodeBound(upper); err != nil {
			return nil, errors.Wrap(err, "load variables")
		}
		vars = append(vars, v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "load variables")
	}
	return vars, nil
}

func (db *DB) loadConstraints(id string) ([]mpmodel.Constraint, error) {
	rows, err := db.sql.Query(
		"SELECT name, lower, upper FROM constraints WHERE model_id = ? ORDER BY idx", id,
	)
	if err != nil {
		return nil, errors.Wrap(err, "load constraints")
	}
	defer rows.Close()

	var cons []mpmodel.Constraint
	for rows.Next() {
		var c mpmodel.Constraint
		var lower, upper string
		if err := rows.Scan(&c.Name, &lower, &upper); err != nil {
			return nil, errors.Wrap(err, "load constraints")
		}
		if c.Lower, err = decodeBound(lower); err != nil {
			return nil, errors.Wrap(err, "load constraints")
		}
		if c.Upper, err = decodeBound(upper); err != nil {
			return nil, errors.Wrap(err, "load constraints")
		}
		cons = append(cons, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "load constraints")
	}
	return cons, nil
}

func (db *DB) loadCoefficients(id string, cons []mpmodel.Constraint) error {
	rows, err := db.sql.Query(
		"SELECT constraint_idx, var_idx, coef FROM coefficients WHERE model_id = ? ORDER BY constraint_idx, position", id,
	)
	if err != nil {
		return errors.Wrap(err, "load coefficients")
	}
	defer rows.Close()

	for rows.Next() {
		var ci int
		var t mpmodel.Term
		if err := rows.Scan(&ci, &t.Var, &t.Coef); err != nil {
			return errors.Wrap(err, "load coefficients")
		}
		if ci < 0 || ci >= len(cons) {
			return errors.Wrapf(errors.ErrInvalidInput, "coefficient for unknown constraint %d", ci)
		}
		cons[ci].Terms = append(cons[ci].Terms, t)
	}
	if err := rows.Err(); err != nil {
		return errors.Wrap(err, "load coefficients")
	}
	return nil
}

// List returns summaries of all stored models, newest first.
func (db *DB) List() ([]Entry, error) {
	rows, err := db.sql.Query(`
		SELECT m.id, m.name, m.created,
			(SELECT COUNT(*) FROM variables v WHERE v.model_id = m.id),
			(SELECT COUNT(*) FROM constraints c WHERE c.model_id = m.id)
		FROM models m ORDER BY m.created DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "list models")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Name, &created, &e.Variables, &e.Constraints); err != nil {
			return nil, errors.Wrap(err, "list models")
		}
		if e.Created, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, errors.Wrap(err, "list models")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list models")
	}
	return entries, nil
}

// Delete removes the model stored under id.
func (db *DB) Delete(id string) error {
	res, err := db.sql.Exec("DELETE FROM models WHERE id = ?", id)
	if err != nil {
		return errors.Wrap(err, "delete model")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete model")
	}
	if n == 0 {
		return errors.NewNotFound("model", id)
	}
	for _, table := range childTables {
		if _, err := db.sql.Exec("DELETE FROM "+table+" WHERE model_id = ?", id); err != nil {
			return errors.Wrap(err, "delete model")
		}
	}
	return nil
}
