package db

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestEnsureSchemaCreatesOnlyMissingTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	for _, tbl := range schema {
		q := mock.ExpectQuery("FROM information_schema.tables").WithArgs(tbl.name)
		if tbl.name == "bookings" {
			q.WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("bookings"))
			continue
		}
		q.WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + tbl.name).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("EnsureSchema error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureSchemaNilDB(t *testing.T) {
	if err := EnsureSchema(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
}
