package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samber/lo"

	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/pkg/log"
	"github.com/realboxofme/sintas/testutil"
)

type fixture struct {
	*testutil.Fixtures
	notifier *testutil.Notifier
	stats    *testutil.Invalidator
	uc       domain.DisposisiUsecase

	sekretaris *domain.User
	staff      *domain.User
}

func newFixture() *fixture {
	fx := &fixture{
		Fixtures: testutil.NewFixtures(),
		notifier: testutil.NewNotifier(),
		stats:    &testutil.Invalidator{},
	}
	fx.uc = NewDisposisiUsecase(fx.Disposisi, fx.SuratMasuk, fx.Users, &testutil.Transactor{}, fx.notifier, fx.stats, log.NewNopLogger())
	fx.sekretaris = fx.AddUser("Sekretaris", nil)
	fx.staff = fx.AddUser("Staff", nil)
	return fx
}

func (fx *fixture) create(t *testing.T, suratID string) *domain.Disposisi {
	t.Helper()
	d, err := fx.uc.Create(context.Background(), &domain.DisposisiCreateRequest{
		SuratMasukID: suratID,
		DariID:       fx.sekretaris.ID,
		KeID:         fx.staff.ID,
		Instruksi:    "Segera tindak lanjuti",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	select {
	case <-fx.notifier.Sent:
	case <-time.After(time.Second):
		t.Fatal("notification not sent")
	}
	return d
}

func (fx *fixture) status(t *testing.T, suratID string) domain.StatusSuratMasuk {
	t.Helper()
	s, err := fx.SuratMasuk.FindByID(context.Background(), suratID, nil)
	if err != nil {
		t.Fatalf("load letter: %v", err)
	}
	return s.Status
}

func TestDisposisiCreateMovesLetterToDiproses(t *testing.T) {
	fx := newFixture()
	surat := fx.AddSuratMasuk("001/SM/2024", fx.sekretaris)

	d := fx.create(t, surat.ID)
	if d.Status != domain.StatusDisposisiPending {
		t.Errorf("status = %q, want Pending", d.Status)
	}
	if got := fx.status(t, surat.ID); got != domain.StatusSuratMasukDiproses {
		t.Errorf("letter status = %q, want Diproses", got)
	}
	if fx.stats.Calls.Load() != 1 {
		t.Errorf("invalidations = %d, want 1", fx.stats.Calls.Load())
	}
}

func TestDisposisiCreateKeepsArchivedLetter(t *testing.T) {
	fx := newFixture()
	surat := fx.AddSuratMasuk("001/SM/2024", fx.sekretaris)
	_ = fx.SuratMasuk.UpdateStatus(context.Background(), surat.ID, domain.StatusSuratMasukDiarsipkan)

	fx.create(t, surat.ID)
	if got := fx.status(t, surat.ID); got != domain.StatusSuratMasukDiarsipkan {
		t.Errorf("letter status = %q, want Diarsipkan", got)
	}
}

func TestDisposisiCreateReferences(t *testing.T) {
	fx := newFixture()
	surat := fx.AddSuratMasuk("001/SM/2024", fx.sekretaris)

	tests := []struct {
		name    string
		req     domain.DisposisiCreateRequest
		wantErr error
	}{
		{"unknown letter", domain.DisposisiCreateRequest{SuratMasukID: "missing", DariID: fx.sekretaris.ID, KeID: fx.staff.ID, Instruksi: "x"}, domain.ErrSuratMasukNotFound},
		{"unknown dari", domain.DisposisiCreateRequest{SuratMasukID: surat.ID, DariID: "missing", KeID: fx.staff.ID, Instruksi: "x"}, domain.ErrDariUserNotFound},
		{"unknown ke", domain.DisposisiCreateRequest{SuratMasukID: surat.ID, DariID: fx.sekretaris.ID, KeID: "missing", Instruksi: "x"}, domain.ErrKeUserNotFound},
		{"blank instruksi", domain.DisposisiCreateRequest{SuratMasukID: surat.ID, DariID: fx.sekretaris.ID, KeID: fx.staff.ID, Instruksi: " "}, domain.ErrMissingRequiredField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := fx.uc.Create(context.Background(), &tt.req); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if got := fx.status(t, surat.ID); got != domain.StatusSuratMasukDiterima {
		t.Errorf("letter status = %q, want unchanged", got)
	}
	if len(fx.Disposisi.Rows()) != 0 {
		t.Error("failed creates stored rows")
	}
}

func TestDisposisiNotificationFailureIsIgnored(t *testing.T) {
	fx := newFixture()
	fx.notifier.Err = errors.New("smtp down")
	surat := fx.AddSuratMasuk("001/SM/2024", fx.sekretaris)

	if d := fx.create(t, surat.ID); d.ID == "" {
		t.Error("disposisi not created")
	}
}

func TestDisposisiResolveCompletesLetter(t *testing.T) {
	fx := newFixture()
	surat := fx.AddSuratMasuk("001/SM/2024", fx.sekretaris)
	first := fx.create(t, surat.ID)
	second := fx.create(t, surat.ID)
	selesai := &domain.DisposisiUpdateRequest{Status: lo.ToPtr(domain.StatusDisposisiSelesai)}

	if _, err := fx.uc.Update(context.Background(), first.ID, selesai); err != nil {
		t.Fatalf("Update(first) error = %v", err)
	}
	if got := fx.status(t, surat.ID); got != domain.StatusSuratMasukDiproses {
		t.Fatalf("letter status after first = %q, want Diproses", got)
	}

	got, err := fx.uc.Update(context.Background(), second.ID, selesai)
	if err != nil {
		t.Fatalf("Update(second) error = %v", err)
	}
	if got.Status != domain.StatusDisposisiSelesai {
		t.Errorf("disposisi status = %q", got.Status)
	}
	if got := fx.status(t, surat.ID); got != domain.StatusSuratMasukSelesai {
		t.Errorf("letter status = %q, want Selesai", got)
	}
}

func TestDisposisiUpdateAndDelete(t *testing.T) {
	fx := newFixture()
	surat := fx.AddSuratMasuk("001/SM/2024", fx.sekretaris)
	d := fx.create(t, surat.ID)
	ctx := context.Background()

	got, err := fx.uc.Update(ctx, d.ID, &domain.DisposisiUpdateRequest{Catatan: lo.ToPtr("sudah dibaca")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Catatan != "sudah dibaca" || got.Status != domain.StatusDisposisiPending {
		t.Errorf("got %+v", got)
	}
	if _, err := fx.uc.Update(ctx, "missing", &domain.DisposisiUpdateRequest{}); !errors.Is(err, domain.ErrDisposisiNotFound) {
		t.Errorf("Update(missing) error = %v", err)
	}

	if err := fx.uc.Delete(ctx, d.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := fx.uc.FindByID(ctx, d.ID); !errors.Is(err, domain.ErrDisposisiNotFound) {
		t.Errorf("FindByID after delete error = %v", err)
	}
}

func TestDisposisiFindPageByUser(t *testing.T) {
	fx := newFixture()
	surat := fx.AddSuratMasuk("001/SM/2024", fx.sekretaris)
	fx.create(t, surat.ID)
	other := fx.AddUser("Kepala Dinas", nil)

	rows, _, err := fx.uc.FindPage(context.Background(), &domain.DisposisiFilter{UserID: &fx.staff.ID}, nil)
	if err != nil || len(rows) != 1 {
		t.Fatalf("FindPage(staff) = %d rows, err %v", len(rows), err)
	}
	rows, _, _ = fx.uc.FindPage(context.Background(), &domain.DisposisiFilter{UserID: &other.ID}, nil)
	if len(rows) != 0 {
		t.Errorf("FindPage(other) = %d rows, want 0", len(rows))
	}
}
