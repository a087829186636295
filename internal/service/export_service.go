package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/todopro_api/internal/config"
	"github.com/GTDGit/todopro_api/internal/export"
	"github.com/GTDGit/todopro_api/internal/models"
	"github.com/GTDGit/todopro_api/internal/utils"
	"github.com/GTDGit/todopro_api/pkg/whatsapp"
)

// QuoteGetter loads a stored quote.
type QuoteGetter interface {
	Get(ctx context.Context, id string) (*models.Quote, error)
}

// DocumentArchiver uploads exported documents.
type DocumentArchiver interface {
	UploadDocument(ctx context.Context, kind, name string, data []byte) (string, error)
}

// Document is a rendered export.
type Document struct {
	Filename   string
	Data       []byte
	ArchiveURL string
}

// ExportService turns stored quotes into PDFs and WhatsApp messages.
// archiver and messenger are optional.
type ExportService struct {
	quotes    QuoteGetter
	renderer  *export.PDFRenderer
	company   config.CompanyConfig
	archiver  DocumentArchiver
	messenger Messenger
}

func NewExportService(quotes QuoteGetter, company config.CompanyConfig, archiver DocumentArchiver, messenger Messenger) *ExportService {
	return &ExportService{
		quotes:    quotes,
		renderer:  export.NewPDFRenderer(company),
		company:   company,
		archiver:  archiver,
		messenger: messenger,
	}
}

// PDF renders the quote or contract document. Contracts are archived when
// an archiver is configured; archive failures do not fail the export.
func (s *ExportService) PDF(ctx context.Context, id string) (*Document, error) {
	q, err := s.quotes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := s.renderer.Render(*q)
	if err != nil {
		return nil, err
	}
	doc := &Document{Filename: export.Filename(*q), Data: data}

	if s.archiver != nil && q.IsContract() {
		url, err := s.archiver.UploadDocument(ctx, string(q.Type), doc.Filename, data)
		if err != nil {
			log.Warn().Err(err).Str("quote_id", q.ID).Msg("Contract archive failed")
		} else {
			doc.ArchiveURL = url
		}
	}
	return doc, nil
}

// ShareMessage builds the click-to-chat message for a quote.
func (s *ExportService) ShareMessage(ctx context.Context, id string) (*export.ShareMessage, error) {
	q, err := s.quotes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	msg := export.BuildShareMessage(s.company, *q)
	return &msg, nil
}

// SendResult reports a pushed WhatsApp message.
type SendResult struct {
	To        string `json:"to"`
	MessageID string `json:"messageId"`
}

// SendWhatsApp pushes the share message through the Cloud API. to defaults
// to the client's phone.
func (s *ExportService) SendWhatsApp(ctx context.Context, id, to string) (*SendResult, error) {
	if s.messenger == nil {
		return nil, utils.ErrMessagingDisabled
	}
	msg, err := s.ShareMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(to) == "" {
		to = msg.Phone
	}
	to = whatsapp.DigitsOnly(to)
	if to == "" {
		return nil, utils.ErrNoRecipient
	}
	msgID, err := s.messenger.SendText(ctx, to, msg.Text)
	if err != nil {
		return nil, err
	}
	return &SendResult{To: to, MessageID: msgID}, nil
}
