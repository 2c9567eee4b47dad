package database

import (
	"database/sql"
)

type PgVacationRepository struct {
	conn *sql.DB
}

func NewPgVacationRepository(dsn string) (*PgVacationRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &PgVacationRepository{conn: db}, nil
}

func (db *PgVacationRepository) Ping() error {
	return db.conn.Ping()
}

func (db *PgVacationRepository) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}
