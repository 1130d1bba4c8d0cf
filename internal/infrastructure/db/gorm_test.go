package db

import (
	"errors"
	"testing"

	"realreselling/internal/domain/submission"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
)

func TestOpenGormWithDialector_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New() // fake *sql.DB, pings unmonitored
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true, // don't query @@version
	})

	gdb, err := OpenGormWithDialector(dial)
	if err != nil {
		t.Fatalf("OpenGormWithDialector error: %v", err)
	}
	if gdb == nil {
		t.Fatalf("got nil gorm.DB")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpenGormWithDialector_PingFails(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectPing().WillReturnError(errors.New("no ping"))

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})

	gdb, err := OpenGormWithDialector(dial)
	if err == nil {
		t.Fatalf("expected error, got nil (gdb=%v)", gdb)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres"} {
		d, err := Dialector(driver, "dsn")
		if err != nil {
			t.Fatalf("Dialector(%q): %v", driver, err)
		}
		if d.Name() != driver {
			t.Fatalf("Dialector(%q).Name() = %q", driver, d.Name())
		}
	}
	if _, err := Dialector("oracle", "dsn"); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestMigrate_CreatesSubmissionsTable(t *testing.T) {
	gdb, err := OpenGormWithDialector(sqlite.Open("file:migrate_test?mode=memory&cache=shared"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if !gdb.Migrator().HasTable(&submission.Submission{}) {
		t.Fatalf("submissions table missing")
	}
	if !gdb.Migrator().HasIndex(&submission.Submission{}, "ux_submissions_access_token") {
		t.Fatalf("access token unique index missing")
	}
}
