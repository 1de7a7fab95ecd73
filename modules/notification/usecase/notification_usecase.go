package usecase

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	textTemplate "text/template"

	"github.com/pkg/errors"

	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/pkg/email"
	"github.com/realboxofme/sintas/pkg/log"
)

const disposisiSubject = `[SINTAS] Disposisi baru: {{.NomorSurat}}`

const disposisiText = `Yth. {{.Penerima}},

Anda menerima disposisi dari {{.Pemberi}} untuk surat nomor {{.NomorSurat}} perihal "{{.Perihal}}".

Instruksi: {{.Instruksi}}
{{- if .Catatan}}
Catatan: {{.Catatan}}
{{- end}}

Sifat surat: {{.Sifat}}
`

const disposisiHTML = `<p>Yth. {{.Penerima}},</p>
<p>Anda menerima disposisi dari <strong>{{.Pemberi}}</strong> untuk surat nomor
<strong>{{.NomorSurat}}</strong> perihal &quot;{{.Perihal}}&quot;.</p>
<p><strong>Instruksi:</strong> {{.Instruksi}}</p>
{{- if .Catatan}}
<p><strong>Catatan:</strong> {{.Catatan}}</p>
{{- end}}
<p>Sifat surat: {{.Sifat | upper}}</p>`

type disposisiData struct {
	Penerima   string
	Pemberi    string
	NomorSurat string
	Perihal    string
	Instruksi  string
	Catatan    string
	Sifat      string
}

type notificationUsecase struct {
	client  email.Client
	subject *textTemplate.Template
	text    *textTemplate.Template
	html    *template.Template
	logger  log.Logger
}

func NewNotificationUsecase(client email.Client, logger log.Logger) domain.NotificationUsecase {
	funcs := template.FuncMap{"upper": strings.ToUpper}
	return &notificationUsecase{
		client:  client,
		subject: textTemplate.Must(textTemplate.New("subject").Parse(disposisiSubject)),
		text:    textTemplate.Must(textTemplate.New("text").Parse(disposisiText)),
		html:    template.Must(template.New("html").Funcs(funcs).Parse(disposisiHTML)),
		logger:  logger,
	}
}

func (u *notificationUsecase) DisposisiAssigned(ctx context.Context, d *domain.Disposisi) error {
	if d == nil || d.Ke == nil || d.Ke.Email == "" {
		return errors.New("disposisi recipient has no email address")
	}

	data := disposisiData{
		Penerima:  d.Ke.Nama,
		Instruksi: d.Instruksi,
		Catatan:   d.Catatan,
	}
	if d.Dari != nil {
		data.Pemberi = d.Dari.Nama
	}
	if d.SuratMasuk != nil {
		data.NomorSurat = d.SuratMasuk.NomorSurat
		data.Perihal = d.SuratMasuk.Perihal
		data.Sifat = string(d.SuratMasuk.SifatSurat)
	}

	msg, err := u.render(data)
	if err != nil {
		return err
	}
	msg.To = []string{d.Ke.Email}

	if err := u.client.Send(ctx, msg); err != nil {
		return errors.Wrap(err, "send disposisi notification")
	}

	u.logger.InfoContext(ctx, "Disposisi notification sent",
		log.String("disposisi_id", d.ID),
		log.String("to", d.Ke.Email),
	)
	return nil
}

func (u *notificationUsecase) render(data disposisiData) (*email.Message, error) {
	var subject, text, html bytes.Buffer
	if err := u.subject.Execute(&subject, data); err != nil {
		return nil, fmt.Errorf("failed to render subject: %w", err)
	}
	if err := u.text.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("failed to render text body: %w", err)
	}
	if err := u.html.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render html body: %w", err)
	}
	return &email.Message{
		Subject: subject.String(),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
