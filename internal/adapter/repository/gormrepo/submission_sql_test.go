package gormrepo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// The race guard lives in the WHERE clause; pin its shape against the mysql dialect.
func TestApprove_ConditionalUpdateSQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	gdb, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `submissions` SET .* WHERE id = \\? AND approve_secret = \\? AND status = \\?").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "sub-1", "sec", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ok, err := NewSubmissionRepository(gdb).Approve(context.Background(), "sub-1", "sec", "tok", time.Now())
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if ok {
		t.Fatalf("zero affected rows must report false")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
