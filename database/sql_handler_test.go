package database

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/realboxofme/sintas/domain"
)

// dryRunDB builds statements without a server so tests can assert on the generated SQL.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("open dry run db: %v", err)
	}
	return db
}

func TestApplySearch(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return ApplySearch(tx.Model(&domain.SuratMasuk{}), " 50%_off ", "nomor_surat", "perihal").Find(&[]domain.SuratMasuk{})
	})
	if !strings.Contains(sql, `(nomor_surat ILIKE '%50\%\_off%' OR perihal ILIKE '%50\%\_off%')`) {
		t.Errorf("unexpected search clause:\n%s", sql)
	}

	sql = db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return ApplySearch(tx.Model(&domain.SuratMasuk{}), "  ", "perihal").Find(&[]domain.SuratMasuk{})
	})
	if strings.Contains(sql, "ILIKE") {
		t.Errorf("blank search term produced a condition:\n%s", sql)
	}
}

func TestApplyDateRange(t *testing.T) {
	db := dryRunDB(t)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return ApplyDateRange(tx.Model(&domain.Disposisi{}), "created_at", &domain.DateRange{From: &from}).Find(&[]domain.Disposisi{})
	})
	if !strings.Contains(sql, "created_at >= '2024-01-01") || strings.Contains(sql, "created_at <=") {
		t.Errorf("unexpected range clause:\n%s", sql)
	}
}

func TestEscapeLike(t *testing.T) {
	if got := EscapeLike(`a\b%c_d`); got != `a\\b\%c\_d` {
		t.Errorf("EscapeLike() = %q", got)
	}
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"not found", gorm.ErrRecordNotFound, domain.ErrRecordNotFound},
		{"duplicate", gorm.ErrDuplicatedKey, domain.ErrDuplicateValue},
		{"foreign key", gorm.ErrForeignKeyViolated, domain.ErrReferenceViolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Errorf("translateError() = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("translateError() = %v, want %v", got, tt.want)
			}
		})
	}

	other := errors.New("connection reset")
	if got := translateError(other); got != other {
		t.Errorf("unknown error was rewritten: %v", got)
	}
}

func TestTransactorJoinsOuterTransaction(t *testing.T) {
	outer := dryRunDB(t)
	ctx := context.WithValue(context.Background(), txKey{}, outer)

	called := false
	err := NewTransactor(nil).WithinTransaction(ctx, func(inner context.Context) error {
		called = true
		tx, ok := TxFromContext(inner)
		if !ok || tx != outer {
			t.Error("nested call did not reuse the outer transaction")
		}
		return nil
	})
	if err != nil || !called {
		t.Fatalf("WithinTransaction() err = %v, called = %v", err, called)
	}
}
