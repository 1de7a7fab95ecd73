package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/pkg/cache"
	"github.com/realboxofme/sintas/pkg/utils"
)

const (
	chartMonths = 6
	keyPrefix   = "dashboard:"
	// maxQueries bounds how many count queries run at once.
	maxQueries = 8
)

type SuratMasukRepository interface {
	Count(ctx context.Context, filter *domain.SuratMasukFilter) (int64, error)
	CountGroupBy(ctx context.Context, filter *domain.SuratMasukFilter, column string) ([]domain.GroupCount, error)
}

type SuratKeluarRepository interface {
	Count(ctx context.Context, filter *domain.SuratKeluarFilter) (int64, error)
	CountGroupBy(ctx context.Context, filter *domain.SuratKeluarFilter, column string) ([]domain.GroupCount, error)
}

type DisposisiRepository interface {
	Count(ctx context.Context, filter *domain.DisposisiFilter) (int64, error)
}

type ArsipRepository interface {
	Count(ctx context.Context, filter *domain.ArsipFilter) (int64, error)
}

type UserRepository interface {
	Count(ctx context.Context, filter *domain.UserFilter) (int64, error)
}

type Repositories struct {
	SuratMasuk  SuratMasukRepository
	SuratKeluar SuratKeluarRepository
	Disposisi   DisposisiRepository
	Arsip       ArsipRepository
	User        UserRepository
}

type dashboardUsecase struct {
	repos Repositories
	cache cache.Client
	ttl   time.Duration
	loc   *time.Location
	now   func() time.Time
}

// NewDashboardUsecase builds the statistics usecase. A zero ttl or nil cache disables caching.
func NewDashboardUsecase(repos Repositories, cacheClient cache.Client, ttl time.Duration, loc *time.Location) domain.DashboardUsecase {
	if loc == nil {
		loc = time.Local
	}
	return &dashboardUsecase{
		repos: repos,
		cache: cacheClient,
		ttl:   ttl,
		loc:   loc,
		now:   time.Now,
	}
}

func cacheKey(month, year int) string {
	return fmt.Sprintf("%s%d:%02d", keyPrefix, year, month)
}

// Stats returns the dashboard figures for month/year; zero values mean the current month.
func (u *dashboardUsecase) Stats(ctx context.Context, month, year int) (*domain.DashboardStats, error) {
	now := u.now().In(u.loc)
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	load := func(ctx context.Context) (*domain.DashboardStats, error) {
		return u.compute(ctx, time.Month(month), year)
	}
	if u.cache == nil || u.ttl <= 0 {
		return load(ctx)
	}
	return cache.Remember(ctx, u.cache, cacheKey(month, year), u.ttl, load)
}

func monthRange(start time.Time) *domain.DateRange {
	return &domain.DateRange{From: lo.ToPtr(start), To: lo.ToPtr(utils.MonthEnd(start))}
}

func (u *dashboardUsecase) compute(ctx context.Context, month time.Month, year int) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}
	ov := &stats.Overview
	current := monthRange(time.Date(year, month, 1, 0, 0, 0, 0, u.loc))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxQueries)

	count := func(dst *int64, fn func(context.Context) (int64, error)) {
		g.Go(func() error {
			n, err := fn(ctx)
			*dst = n
			return err
		})
	}
	group := func(dst *[]domain.GroupCount, fn func(context.Context) ([]domain.GroupCount, error)) {
		g.Go(func() error {
			rows, err := fn(ctx)
			if rows == nil {
				rows = []domain.GroupCount{}
			}
			*dst = rows
			return err
		})
	}

	r := u.repos
	count(&ov.TotalSuratMasuk, func(ctx context.Context) (int64, error) { return r.SuratMasuk.Count(ctx, nil) })
	count(&ov.TotalSuratKeluar, func(ctx context.Context) (int64, error) { return r.SuratKeluar.Count(ctx, nil) })
	count(&ov.TotalDisposisiPending, func(ctx context.Context) (int64, error) {
		return r.Disposisi.Count(ctx, &domain.DisposisiFilter{Status: lo.ToPtr(domain.StatusDisposisiPending)})
	})
	count(&ov.TotalArsip, func(ctx context.Context) (int64, error) {
		return r.Arsip.Count(ctx, &domain.ArsipFilter{StatusArsip: lo.ToPtr(domain.StatusArsipAktif)})
	})
	count(&ov.TotalUsers, func(ctx context.Context) (int64, error) {
		return r.User.Count(ctx, &domain.UserFilter{IsActive: lo.ToPtr(true)})
	})
	count(&ov.SuratMasukBulanIni, func(ctx context.Context) (int64, error) {
		return r.SuratMasuk.Count(ctx, &domain.SuratMasukFilter{CreatedWithin: current})
	})
	count(&ov.SuratKeluarBulanIni, func(ctx context.Context) (int64, error) {
		return r.SuratKeluar.Count(ctx, &domain.SuratKeluarFilter{CreatedWithin: current})
	})

	group(&stats.ByStatus.SuratMasuk, func(ctx context.Context) ([]domain.GroupCount, error) {
		return r.SuratMasuk.CountGroupBy(ctx, nil, "status")
	})
	group(&stats.ByStatus.SuratKeluar, func(ctx context.Context) ([]domain.GroupCount, error) {
		return r.SuratKeluar.CountGroupBy(ctx, nil, "status")
	})
	group(&stats.BySifat.SuratMasuk, func(ctx context.Context) ([]domain.GroupCount, error) {
		return r.SuratMasuk.CountGroupBy(ctx, nil, "sifat_surat")
	})
	group(&stats.BySifat.SuratKeluar, func(ctx context.Context) ([]domain.GroupCount, error) {
		return r.SuratKeluar.CountGroupBy(ctx, nil, "sifat_surat")
	})

	months := utils.LastMonths(chartMonths, month, year, u.loc)
	stats.MonthlyChart = make([]domain.MonthlyChartPoint, len(months))
	for i, start := range months {
		point := &stats.MonthlyChart[i]
		point.Month = int(start.Month())
		point.Year = start.Year()
		point.MonthName = domain.NamaBulan(start.Month())

		rng := monthRange(start)
		count(&point.SuratMasuk, func(ctx context.Context) (int64, error) {
			return r.SuratMasuk.Count(ctx, &domain.SuratMasukFilter{CreatedWithin: rng})
		})
		count(&point.SuratKeluar, func(ctx context.Context) (int64, error) {
			return r.SuratKeluar.Count(ctx, &domain.SuratKeluarFilter{CreatedWithin: rng})
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
