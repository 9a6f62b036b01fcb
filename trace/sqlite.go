package trace

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	log "github.com/sirupsen/logrus"
	"github.com/tebeka/atexit"
)

// SQLiteTraceWriter buffers tasks and writes them to a SQLite database in
// batches.
type SQLiteTraceWriter struct {
	*sql.DB
	statement *sql.Stmt

	mu        sync.Mutex
	dbName    string
	pending   []Task
	batchSize int
}

// NewSQLiteTraceWriter creates a writer for the database at path. An empty
// path picks a unique name in the working directory. Buffered tasks are
// flushed when the program exits through atexit.
func NewSQLiteTraceWriter(path string) *SQLiteTraceWriter {
	w := &SQLiteTraceWriter{
		dbName:    path,
		batchSize: 1000,
	}

	atexit.Register(func() {
		if err := w.Flush(); err != nil {
			log.WithError(err).Error("flushing trace")
		}
	})

	return w
}

// Path returns the database file name
func (t *SQLiteTraceWriter) Path() string {
	return t.dbName
}

// Init creates the database and its table. It refuses to overwrite an
// existing file.
func (t *SQLiteTraceWriter) Init() error {
	if t.dbName == "" {
		t.dbName = "rdmaviz_trace_" + xid.New().String() + ".sqlite3"
	}

	if _, err := os.Stat(t.dbName); err == nil {
		return fmt.Errorf("file %s already exists", t.dbName)
	}

	db, err := sql.Open("sqlite3", t.dbName)
	if err != nil {
		return fmt.Errorf("opening %s: %w", t.dbName, err)
	}
	t.DB = db

	if err := t.createTable(); err != nil {
		return err
	}

	t.statement, err = t.Prepare(`INSERT INTO trace VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}

	log.WithField("file", t.dbName).Info("trace is collected in database")
	return nil
}

func (t *SQLiteTraceWriter) createTable() error {
	stmts := []string{
		`create table trace
		(
			task_id    varchar(200) not null,
			parent_id  varchar(200),
			kind       varchar(100),
			what       varchar(100),
			location   varchar(100),
			start_time float        not null,
			end_time   float        default 0
		);`,
		`create index trace_task_id_index on trace (task_id);`,
		`create index trace_parent_id_index on trace (parent_id);`,
		`create index trace_kind_index on trace (kind);`,
		`create index trace_start_time_index on trace (start_time);`,
	}
	for _, s := range stmts {
		if _, err := t.Exec(s); err != nil {
			return fmt.Errorf("creating trace table: %w", err)
		}
	}
	return nil
}

// Write buffers a task, flushing once a batch is full
func (t *SQLiteTraceWriter) Write(task Task) {
	t.mu.Lock()
	t.pending = append(t.pending, task)
	full := len(t.pending) >= t.batchSize
	t.mu.Unlock()

	if full {
		if err := t.Flush(); err != nil {
			log.WithError(err).Error("flushing trace")
		}
	}
}

// Flush writes all buffered tasks in one transaction
func (t *SQLiteTraceWriter) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.pending) == 0 || t.DB == nil {
		return nil
	}

	tx, err := t.Begin()
	if err != nil {
		return err
	}
	stmt := tx.Stmt(t.statement)
	for _, task := range t.pending {
		_, err := stmt.Exec(
			task.ID,
			task.ParentID,
			task.Kind,
			task.What,
			task.Where,
			float64(task.StartTime),
			float64(task.EndTime),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting task %s: %w", task.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	t.pending = nil
	return nil
}

// Close flushes and closes the database
func (t *SQLiteTraceWriter) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if t.DB == nil {
		return nil
	}
	return t.DB.Close()
}
