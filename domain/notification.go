package domain

import "context"

// NotificationUsecase tells users about work assigned to them.
type NotificationUsecase interface {
	// DisposisiAssigned emails the recipient of a disposition. d must have SuratMasuk, Dari and Ke loaded.
	DisposisiAssigned(ctx context.Context, d *Disposisi) error
}
