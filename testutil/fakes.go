package testutil

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/realboxofme/sintas/domain"
)

// Transactor runs fn directly and counts the calls.
type Transactor struct {
	Calls atomic.Int32
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls.Add(1)
	return fn(ctx)
}

// Hasher prefixes passwords instead of hashing them.
type Hasher struct{}

func (Hasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (Hasher) Compare(hashed, password string) bool { return hashed == "hashed:"+password }

// Invalidator counts dashboard cache invalidations.
type Invalidator struct {
	Calls atomic.Int32
}

func (i *Invalidator) Invalidate(context.Context) { i.Calls.Add(1) }

// Notifier records dispositions it was asked to announce on Sent.
type Notifier struct {
	Sent chan *domain.Disposisi
	Err  error
}

func NewNotifier() *Notifier {
	return &Notifier{Sent: make(chan *domain.Disposisi, 8)}
}

func (n *Notifier) DisposisiAssigned(_ context.Context, d *domain.Disposisi) error {
	n.Sent <- d
	return n.Err
}

// Fixtures holds one repository per table, sharing the role store with users.
type Fixtures struct {
	Roles       *RoleRepo
	Users       *UserRepo
	SuratMasuk  *SuratMasukRepo
	SuratKeluar *SuratKeluarRepo
	Disposisi   *DisposisiRepo
	Arsip       *ArsipRepo
}

func NewFixtures() *Fixtures {
	roles := NewRoleRepo()
	return &Fixtures{
		Roles:       roles,
		Users:       NewUserRepo(roles),
		SuratMasuk:  NewSuratMasukRepo(),
		SuratKeluar: NewSuratKeluarRepo(),
		Disposisi:   NewDisposisiRepo(),
		Arsip:       NewArsipRepo(),
	}
}

var seq struct {
	sync.Mutex
	n int
}

func next() int {
	seq.Lock()
	defer seq.Unlock()
	seq.n++
	return seq.n
}

// AddRole stores a role carrying perms.
func (f *Fixtures) AddRole(nama string, perms ...string) *domain.Role {
	r := &domain.Role{Nama: nama, Permissions: domain.NewStringSlice(perms)}
	_ = f.Roles.Create(context.Background(), r)
	return r
}

// AddUser stores an active user with a unique email. The password is "secret".
func (f *Fixtures) AddUser(nama string, role *domain.Role) *domain.User {
	u := &domain.User{
		Email:    strings.ToLower(strings.ReplaceAll(nama, " ", ".")) + "." + strconv.Itoa(next()) + "@sintas.test",
		Password: "hashed:secret",
		Nama:     nama,
		IsActive: true,
	}
	if role != nil {
		u.RoleID = role.ID
		u.Role = role
	}
	_ = f.Users.Create(context.Background(), u)
	return u
}

func (f *Fixtures) AddSuratMasuk(nomor string, penerima *domain.User) *domain.SuratMasuk {
	s := &domain.SuratMasuk{
		NomorSurat:   nomor,
		TanggalSurat: domain.Date(time.Now()),
		Pengirim:     "Dinas Pendidikan",
		Perihal:      "Undangan rapat",
		SifatSurat:   domain.SifatSuratBiasa,
		PenerimaID:   penerima.ID,
		Status:       domain.StatusSuratMasukDiterima,
	}
	_ = f.SuratMasuk.Create(context.Background(), s)
	return s
}

func (f *Fixtures) AddSuratKeluar(nomor string, pengirim *domain.User) *domain.SuratKeluar {
	s := &domain.SuratKeluar{
		NomorSurat:   nomor,
		TanggalSurat: domain.Date(time.Now()),
		Penerima:     "Bupati",
		Perihal:      "Laporan kegiatan",
		SifatSurat:   domain.SifatSuratPenting,
		PengirimID:   pengirim.ID,
		Status:       domain.StatusSuratKeluarDraft,
	}
	_ = f.SuratKeluar.Create(context.Background(), s)
	return s
}
