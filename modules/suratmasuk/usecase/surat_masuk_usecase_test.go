package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samber/lo"

	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/testutil"
)

type fixture struct {
	*testutil.Fixtures
	tx    *testutil.Transactor
	stats *testutil.Invalidator
	uc    domain.SuratMasukUsecase
}

func newFixture() *fixture {
	fx := &fixture{
		Fixtures: testutil.NewFixtures(),
		tx:       &testutil.Transactor{},
		stats:    &testutil.Invalidator{},
	}
	fx.uc = NewSuratMasukUsecase(fx.SuratMasuk, fx.Disposisi, fx.Arsip, fx.Users, fx.tx, fx.stats)
	return fx
}

func TestSuratMasukCreate(t *testing.T) {
	fx := newFixture()
	penerima := fx.AddUser("Sekretaris", nil)
	fx.AddSuratMasuk("001/SM/2024", penerima)

	valid := func() domain.SuratMasukCreateRequest {
		return domain.SuratMasukCreateRequest{
			NomorSurat:   " 002/SM/2024 ",
			TanggalSurat: domain.Date(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
			Pengirim:     "Kementerian Dalam Negeri",
			Perihal:      "Undangan",
			SifatSurat:   domain.SifatSuratPenting,
			PenerimaID:   penerima.ID,
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *domain.SuratMasukCreateRequest)
		wantErr error
	}{
		{name: "created", mutate: func(*domain.SuratMasukCreateRequest) {}},
		{name: "missing tanggal", mutate: func(r *domain.SuratMasukCreateRequest) { r.TanggalSurat = domain.Date{} }, wantErr: domain.ErrMissingRequiredField},
		{name: "unknown penerima", mutate: func(r *domain.SuratMasukCreateRequest) { r.PenerimaID = "missing" }, wantErr: domain.ErrPenerimaNotFound},
		{name: "duplicate nomor", mutate: func(r *domain.SuratMasukCreateRequest) { r.NomorSurat = "001/SM/2024" }, wantErr: domain.ErrNomorSuratAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			before := fx.stats.Calls.Load()

			surat, err := fx.uc.Create(context.Background(), &req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
				}
				if fx.stats.Calls.Load() != before {
					t.Error("stats invalidated on failed create")
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if surat.NomorSurat != "002/SM/2024" {
				t.Errorf("nomorSurat = %q, want trimmed", surat.NomorSurat)
			}
			if surat.Status != domain.StatusSuratMasukDiterima {
				t.Errorf("status = %q, want Diterima", surat.Status)
			}
			if surat.Penerima == nil || surat.Penerima.ID != penerima.ID {
				t.Errorf("penerima not attached: %+v", surat.Penerima)
			}
			if fx.stats.Calls.Load() != before+1 {
				t.Error("stats not invalidated")
			}
		})
	}
}

func TestSuratMasukFindByID(t *testing.T) {
	fx := newFixture()
	surat := fx.AddSuratMasuk("001/SM/2024", fx.AddUser("Sekretaris", nil))

	got, err := fx.uc.FindByID(context.Background(), surat.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.Disposisi == nil || got.Arsip == nil {
		t.Error("child lists must never be nil")
	}

	if _, err := fx.uc.FindByID(context.Background(), "missing"); !errors.Is(err, domain.ErrSuratMasukNotFound) {
		t.Errorf("FindByID(missing) error = %v, want not found", err)
	}
}

func TestSuratMasukFindPage(t *testing.T) {
	fx := newFixture()
	penerima := fx.AddUser("Sekretaris", nil)
	fx.AddSuratMasuk("001/SM/2024", penerima)
	penting := fx.AddSuratMasuk("002/SM/2024", penerima)
	penting.SifatSurat = domain.SifatSuratPenting

	rows, page, err := fx.uc.FindPage(context.Background(),
		&domain.SuratMasukFilter{SifatSurat: lo.ToPtr(domain.SifatSuratPenting)},
		&domain.FindPageOption{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("FindPage() error = %v", err)
	}
	if len(rows) != 1 || rows[0].ID != penting.ID || page.Total != 1 {
		t.Errorf("rows = %d, total = %d", len(rows), page.Total)
	}

	rows, _, _ = fx.uc.FindPage(context.Background(), &domain.SuratMasukFilter{SearchTerm: lo.ToPtr("001/sm")}, nil)
	if len(rows) != 1 {
		t.Errorf("search matched %d rows, want 1", len(rows))
	}
}

func TestSuratMasukUpdate(t *testing.T) {
	fx := newFixture()
	penerima := fx.AddUser("Sekretaris", nil)
	fx.AddSuratMasuk("001/SM/2024", penerima)
	surat := fx.AddSuratMasuk("002/SM/2024", penerima)

	tests := []struct {
		name    string
		req     domain.SuratMasukUpdateRequest
		wantErr error
	}{
		{"status only", domain.SuratMasukUpdateRequest{Status: lo.ToPtr(domain.StatusSuratMasukSelesai)}, nil},
		{"same nomor kept", domain.SuratMasukUpdateRequest{NomorSurat: lo.ToPtr("002/SM/2024")}, nil},
		{"nomor taken", domain.SuratMasukUpdateRequest{NomorSurat: lo.ToPtr("001/SM/2024")}, domain.ErrNomorSuratAlreadyExists},
		{"unknown penerima", domain.SuratMasukUpdateRequest{PenerimaID: lo.ToPtr("missing")}, domain.ErrPenerimaNotFound},
		{"blank perihal", domain.SuratMasukUpdateRequest{Perihal: lo.ToPtr("  ")}, domain.ErrMissingRequiredField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fx.uc.Update(context.Background(), surat.ID, &tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Update() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			if got.NomorSurat != "002/SM/2024" {
				t.Errorf("nomorSurat = %q", got.NomorSurat)
			}
		})
	}

	if _, err := fx.uc.Update(context.Background(), "missing", &domain.SuratMasukUpdateRequest{}); !errors.Is(err, domain.ErrSuratMasukNotFound) {
		t.Errorf("Update(missing) error = %v, want not found", err)
	}
}

func TestSuratMasukDeleteCascades(t *testing.T) {
	fx := newFixture()
	penerima := fx.AddUser("Sekretaris", nil)
	surat := fx.AddSuratMasuk("001/SM/2024", penerima)
	other := fx.AddSuratMasuk("002/SM/2024", penerima)
	ctx := context.Background()

	for _, id := range []string{surat.ID, surat.ID, other.ID} {
		_ = fx.Disposisi.Create(ctx, &domain.Disposisi{SuratMasukID: id, DariID: penerima.ID, KeID: penerima.ID, Instruksi: "Tindak lanjuti"})
	}
	_ = fx.Arsip.Create(ctx, &domain.Arsip{JenisSurat: domain.JenisSuratMasuk, SuratMasukID: &surat.ID, Kategori: "Umum", DiarsipkanOlehID: penerima.ID})

	if err := fx.uc.Delete(ctx, surat.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if fx.tx.Calls.Load() != 1 {
		t.Errorf("transaction calls = %d, want 1", fx.tx.Calls.Load())
	}
	if n := len(fx.Disposisi.Rows()); n != 1 {
		t.Errorf("disposisi left = %d, want 1", n)
	}
	if n := len(fx.Arsip.Rows()); n != 0 {
		t.Errorf("arsip left = %d, want 0", n)
	}
	if _, err := fx.SuratMasuk.FindByID(ctx, surat.ID, nil); !domain.IsRecordNotFound(err) {
		t.Errorf("letter still present: %v", err)
	}

	if err := fx.uc.Delete(ctx, surat.ID); !errors.Is(err, domain.ErrSuratMasukNotFound) {
		t.Errorf("second Delete() error = %v, want not found", err)
	}
}
