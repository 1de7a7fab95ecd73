package domain

import (
	"errors"
	"testing"
	"time"
)

func TestLaporanRequestRange(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)

	tests := []struct {
		name     string
		req      LaporanRequest
		wantFrom *time.Time
		wantTo   *time.Time
		wantErr  error
	}{
		{name: "no bounds"},
		{
			name:     "date only covers the whole end day",
			req:      LaporanRequest{TanggalMulai: "2024-03-01", TanggalSelesai: "2024-03-31"},
			wantFrom: ptr(time.Date(2024, 3, 1, 0, 0, 0, 0, loc)),
			wantTo:   ptr(time.Date(2024, 3, 31, 23, 59, 59, 999999000, loc)),
		},
		{
			name:   "rfc3339 kept as given",
			req:    LaporanRequest{TanggalSelesai: "2024-03-31T12:00:00Z"},
			wantTo: ptr(time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)),
		},
		{name: "garbage", req: LaporanRequest{TanggalMulai: "31/03/2024"}, wantErr: ErrInvalidTanggal},
		{name: "reversed", req: LaporanRequest{TanggalMulai: "2024-04-01", TanggalSelesai: "2024-03-01"}, wantErr: ErrInvalidDateRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := tt.req.Range(loc)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Range() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Range() error = %v", err)
			}
			if !sameTime(rng.From, tt.wantFrom) || !sameTime(rng.To, tt.wantTo) {
				t.Errorf("Range() = %v..%v, want %v..%v", rng.From, rng.To, tt.wantFrom, tt.wantTo)
			}
		})
	}
}

func TestParseJenisLaporan(t *testing.T) {
	for in, want := range map[string]JenisLaporan{
		"bulanan": JenisLaporanBulanan,
		"arsip":   JenisLaporanArsip,
		"":        JenisLaporanSemua,
		"harian":  JenisLaporanSemua,
	} {
		if got := ParseJenisLaporan(in); got != want {
			t.Errorf("ParseJenisLaporan(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSuratMasukTransitions(t *testing.T) {
	if got := SuratMasukStatusOnDisposisiCreated(StatusSuratMasukDiterima); got != StatusSuratMasukDiproses {
		t.Errorf("created from Diterima = %q", got)
	}
	if got := SuratMasukStatusOnDisposisiCreated(StatusSuratMasukDiarsipkan); got != StatusSuratMasukDiarsipkan {
		t.Errorf("created from Diarsipkan = %q", got)
	}

	tests := []struct {
		current StatusSuratMasuk
		pending int64
		want    StatusSuratMasuk
		changed bool
	}{
		{StatusSuratMasukDiproses, 0, StatusSuratMasukSelesai, true},
		{StatusSuratMasukDiproses, 2, StatusSuratMasukDiproses, false},
		{StatusSuratMasukDiarsipkan, 0, StatusSuratMasukDiarsipkan, false},
	}
	for _, tt := range tests {
		got, changed := SuratMasukStatusOnDisposisiResolved(tt.current, tt.pending)
		if got != tt.want || changed != tt.changed {
			t.Errorf("resolved(%q, %d) = %q, %v", tt.current, tt.pending, got, changed)
		}
	}
}

func ptr(t time.Time) *time.Time { return &t }

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
