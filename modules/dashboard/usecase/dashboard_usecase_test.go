package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/pkg/cache"
	"github.com/realboxofme/sintas/pkg/log"
	"github.com/realboxofme/sintas/testutil"
)

type nopCacheLogger struct{}

func (nopCacheLogger) Info(string, ...interface{})  {}
func (nopCacheLogger) Error(string, ...interface{}) {}
func (nopCacheLogger) Debug(string, ...interface{}) {}

func repositories(fx *testutil.Fixtures) Repositories {
	return Repositories{
		SuratMasuk:  fx.SuratMasuk,
		SuratKeluar: fx.SuratKeluar,
		Disposisi:   fx.Disposisi,
		Arsip:       fx.Arsip,
		User:        fx.Users,
	}
}

func seed(t *testing.T) *testutil.Fixtures {
	t.Helper()
	fx := testutil.NewFixtures()
	ctx := context.Background()
	admin := fx.AddUser("Admin", nil)
	inactive := fx.AddUser("Pensiun", nil)
	inactive.IsActive = false

	fx.AddSuratMasuk("001/SM", admin)
	penting := fx.AddSuratMasuk("002/SM", admin)
	penting.SifatSurat = domain.SifatSuratPenting
	old := fx.AddSuratMasuk("003/SM", admin)
	now := time.Now()
	old.CreatedAt = time.Date(now.Year(), now.Month()-2, 15, 12, 0, 0, 0, time.Local)
	fx.AddSuratKeluar("001/SK", admin)

	_ = fx.Disposisi.Create(ctx, &domain.Disposisi{SuratMasukID: penting.ID, Status: domain.StatusDisposisiPending})
	_ = fx.Disposisi.Create(ctx, &domain.Disposisi{SuratMasukID: penting.ID, Status: domain.StatusDisposisiSelesai})
	_ = fx.Arsip.Create(ctx, &domain.Arsip{StatusArsip: domain.StatusArsipAktif})
	_ = fx.Arsip.Create(ctx, &domain.Arsip{StatusArsip: domain.StatusArsipDimusnahkan})
	return fx
}

func TestDashboardStats(t *testing.T) {
	fx := seed(t)
	uc := NewDashboardUsecase(repositories(fx), nil, 0, time.Local)

	stats, err := uc.Stats(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}

	want := domain.DashboardOverview{
		TotalSuratMasuk:       3,
		TotalSuratKeluar:      1,
		TotalDisposisiPending: 1,
		TotalArsip:            1,
		TotalUsers:            1,
		SuratMasukBulanIni:    2,
		SuratKeluarBulanIni:   1,
	}
	if stats.Overview != want {
		t.Errorf("overview = %+v, want %+v", stats.Overview, want)
	}

	bySifat := stats.BySifat.SuratMasuk
	if len(bySifat) != 2 || bySifat[0].Value != "Biasa" || bySifat[0].Count != 2 || bySifat[1].Value != "Penting" {
		t.Errorf("bySifat.suratMasuk = %+v", bySifat)
	}
	if stats.ByStatus.SuratKeluar == nil || len(stats.ByStatus.SuratKeluar) != 1 {
		t.Errorf("byStatus.suratKeluar = %+v", stats.ByStatus.SuratKeluar)
	}

	if len(stats.MonthlyChart) != 6 {
		t.Fatalf("monthlyChart has %d points, want 6", len(stats.MonthlyChart))
	}
	last := stats.MonthlyChart[5]
	now := time.Now()
	if last.Month != int(now.Month()) || last.Year != now.Year() || last.MonthName != domain.NamaBulan(now.Month()) {
		t.Errorf("last chart point = %+v", last)
	}
	if last.SuratMasuk != 2 || last.SuratKeluar != 1 {
		t.Errorf("last chart counts = %d/%d, want 2/1", last.SuratMasuk, last.SuratKeluar)
	}
	if got := stats.MonthlyChart[3].SuratMasuk; got != 1 {
		t.Errorf("chart two months back = %d, want 1", got)
	}
}

func TestDashboardStatsCached(t *testing.T) {
	fx := seed(t)
	mem := cache.NewMemoryCache(&cache.Config{DefaultTTL: time.Minute}, nopCacheLogger{})
	t.Cleanup(func() { _ = mem.Close() })

	uc := NewDashboardUsecase(repositories(fx), mem, time.Minute, time.Local)
	invalidator := NewStatsInvalidator(mem, log.NewNopLogger())
	ctx := context.Background()

	first, err := uc.Stats(ctx, 0, 0)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	fx.AddSuratKeluar("002/SK", fx.AddUser("Staff", nil))

	cached, _ := uc.Stats(ctx, 0, 0)
	if cached.Overview.TotalSuratKeluar != first.Overview.TotalSuratKeluar {
		t.Errorf("cached total = %d, want %d", cached.Overview.TotalSuratKeluar, first.Overview.TotalSuratKeluar)
	}

	invalidator.Invalidate(ctx)
	fresh, _ := uc.Stats(ctx, 0, 0)
	if fresh.Overview.TotalSuratKeluar != 2 {
		t.Errorf("total after invalidate = %d, want 2", fresh.Overview.TotalSuratKeluar)
	}
}

func TestDashboardStatsError(t *testing.T) {
	fx := seed(t)
	fx.Arsip.Err = context.DeadlineExceeded
	uc := NewDashboardUsecase(repositories(fx), nil, 0, time.Local)

	if _, err := uc.Stats(context.Background(), 5, 2024); err == nil {
		t.Fatal("Stats() returned no error")
	}
}
