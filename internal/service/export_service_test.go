package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/GTDGit/todopro_api/internal/config"
	"github.com/GTDGit/todopro_api/internal/models"
	"github.com/GTDGit/todopro_api/internal/utils"
)

var testCompany = config.CompanyConfig{
	Name:      "TODOPRO",
	Phone:     "604 98 00 12",
	Email:     "info@todopro.test",
	Signatory: "Emmanuel Lara",
}

func seededQuote(t *testing.T, f *quoteFixture, phone string) *models.Quote {
	t.Helper()
	req := generateRequest("Ana", codeLine("PINT", 20))
	req.ClientInfo.Phone = phone
	q, err := f.quotes.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return q
}

func TestExportService_PDFArchivesContractsOnly(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture()
	archiver := &fakeArchiver{}
	svc := NewExportService(f.quotes, testCompany, archiver, nil)

	q := seededQuote(t, f, "+34 600 111 222")
	doc, err := svc.PDF(ctx, q.ID)
	if err != nil {
		t.Fatalf("quote pdf: %v", err)
	}
	if !bytes.HasPrefix(doc.Data, []byte("%PDF")) || !strings.HasPrefix(doc.Filename, "quote-") {
		t.Fatalf("unexpected document %q (%d bytes)", doc.Filename, len(doc.Data))
	}
	if doc.ArchiveURL != "" || len(archiver.keys) != 0 {
		t.Fatalf("quotes must not be archived")
	}

	c, err := f.quotes.ConvertToContract(ctx, q.ID)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	doc, err = svc.PDF(ctx, c.ID)
	if err != nil {
		t.Fatalf("contract pdf: %v", err)
	}
	if !strings.HasPrefix(doc.Filename, "contract-") || doc.ArchiveURL == "" {
		t.Fatalf("contract not archived: %+v", doc.Filename)
	}
	if len(archiver.keys) != 1 || archiver.keys[0] != "contract/"+doc.Filename {
		t.Fatalf("archive keys = %v", archiver.keys)
	}
}

func TestExportService_ArchiveFailureDoesNotFailExport(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture()
	svc := NewExportService(f.quotes, testCompany, &fakeArchiver{err: errors.New("bucket gone")}, nil)

	q := seededQuote(t, f, "")
	c, _ := f.quotes.ConvertToContract(ctx, q.ID)
	doc, err := svc.PDF(ctx, c.ID)
	if err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if doc.ArchiveURL != "" || len(doc.Data) == 0 {
		t.Fatalf("unexpected document %+v", doc.ArchiveURL)
	}
}

func TestExportService_PDFNotFound(t *testing.T) {
	f := newQuoteFixture()
	svc := NewExportService(f.quotes, testCompany, nil, nil)
	if _, err := svc.PDF(context.Background(), "nope"); !errors.Is(err, utils.ErrQuoteNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestExportService_SendWhatsApp(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture()
	messenger := &fakeMessenger{}
	svc := NewExportService(f.quotes, testCompany, nil, messenger)

	q := seededQuote(t, f, "+34 600-111-222")
	res, err := svc.SendWhatsApp(ctx, q.ID, "")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if res.To != "34600111222" || res.MessageID != "wamid.1" {
		t.Fatalf("unexpected result %+v", res)
	}

	share, _ := svc.ShareMessage(ctx, q.ID)
	if messenger.sent[0].Body != share.Text {
		t.Fatalf("sent body differs from share message")
	}

	res, err = svc.SendWhatsApp(ctx, q.ID, "(+44) 7700 900123")
	if err != nil || res.To != "447700900123" {
		t.Fatalf("explicit recipient: %+v err=%v", res, err)
	}
}

func TestExportService_SendWhatsAppErrors(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture()
	q := seededQuote(t, f, "")

	disabled := NewExportService(f.quotes, testCompany, nil, nil)
	if _, err := disabled.SendWhatsApp(ctx, q.ID, ""); !errors.Is(err, utils.ErrMessagingDisabled) {
		t.Fatalf("disabled: got %v", err)
	}

	svc := NewExportService(f.quotes, testCompany, nil, &fakeMessenger{})
	if _, err := svc.SendWhatsApp(ctx, q.ID, ""); !errors.Is(err, utils.ErrNoRecipient) {
		t.Fatalf("no phone: got %v", err)
	}

	failing := NewExportService(f.quotes, testCompany, nil, &fakeMessenger{err: errors.New("rate limited")})
	if _, err := failing.SendWhatsApp(ctx, q.ID, "600111222"); err == nil {
		t.Fatalf("expected provider error")
	}
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Service_UploadDocument(t *testing.T) {
	putter := &fakePutter{}
	svc := newS3Service(putter, &config.S3Config{Region: "eu-south-2", Bucket: "todopro-docs", Prefix: "documents"})

	url, err := svc.UploadDocument(context.Background(), "contract", "contract-1715333.pdf", []byte("%PDF-1.3"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if got := aws.ToString(putter.input.Key); got != "documents/contract/contract-1715333.pdf" {
		t.Fatalf("key = %q", got)
	}
	if aws.ToString(putter.input.Bucket) != "todopro-docs" || aws.ToString(putter.input.ContentType) != "application/pdf" {
		t.Fatalf("unexpected input %+v", putter.input)
	}
	if string(putter.body) != "%PDF-1.3" {
		t.Fatalf("body = %q", putter.body)
	}
	if url != "https://todopro-docs.s3.eu-south-2.amazonaws.com/documents/contract/contract-1715333.pdf" {
		t.Fatalf("url = %q", url)
	}
}

func TestS3Service_CustomEndpointAndError(t *testing.T) {
	svc := newS3Service(&fakePutter{}, &config.S3Config{Bucket: "docs", Endpoint: "http://minio:9000/"})
	url, err := svc.UploadDocument(context.Background(), "contract", "c.pdf", []byte("x"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "http://minio:9000/docs/contract/c.pdf" {
		t.Fatalf("url = %q", url)
	}

	failing := newS3Service(&fakePutter{err: errors.New("denied")}, &config.S3Config{Bucket: "docs"})
	if _, err := failing.UploadDocument(context.Background(), "contract", "c.pdf", nil); err == nil {
		t.Fatalf("expected upload error")
	}
}
