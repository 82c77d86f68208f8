package document

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domaindoc "github.com/BackCheck/justice-unveiled/internal/domain/document"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/monitoring/logging"
	"github.com/BackCheck/justice-unveiled/internal/intelligence/extraction"
	"github.com/BackCheck/justice-unveiled/internal/testutil"
	apperrors "github.com/BackCheck/justice-unveiled/pkg/errors"
	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

// memStore keeps object bytes in a map.
type memStore struct {
	objects map[string][]byte
	putErr  error
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (s *memStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if s.putErr != nil {
		return s.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *memStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeStorageError, "object missing").WithDetail(key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStore) PresignedGet(_ context.Context, key, fileName string) (string, error) {
	return "https://store.local/" + key + "?dl=" + fileName, nil
}

func (s *memStore) Remove(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *memStore) Ping(context.Context) error { return nil }

// stubExtractor returns a fixed result.
type stubExtractor struct {
	result *extraction.Result
	err    error
	gotTxt string
}

func (e *stubExtractor) Extract(_ context.Context, in extraction.Input) (*extraction.Result, error) {
	e.gotTxt = in.Text
	if e.err != nil {
		return nil, e.err
	}
	return e.result, nil
}

type fixture struct {
	svc     *Service
	uploads *testutil.MemUploadRepo
	events  *testutil.MemEventRepo
	store   *memStore
	ext     *stubExtractor
}

func newFixture() *fixture {
	f := &fixture{
		uploads: &testutil.MemUploadRepo{},
		events:  &testutil.MemEventRepo{},
		store:   newMemStore(),
		ext: &stubExtractor{result: &extraction.Result{
			Claims: []extraction.SuggestedClaim{
				{ClaimType: legal.ClaimTypeCriminal, LegalSection: "PPC 420", Framework: legal.FrameworkPakistani, Allegation: "Forged sale agreement", Confidence: 0.9},
			},
			Events: []extraction.EventCandidate{
				{Title: "FIR registered", Confidence: 0.8},
				{Title: "", Confidence: 0.5},
			},
			Model: "gpt-4o-mini",
		}},
	}
	f.svc = NewService(f.uploads, f.events, f.store, f.ext, logging.NewNopLogger(), nil)
	return f
}

func TestUpload_StoresObjectAndMetadata(t *testing.T) {
	t.Parallel()
	f := newFixture()

	u, err := f.svc.Upload(context.Background(), UploadInput{
		CaseID:      "HRPM-001",
		FileName:    "fir.pdf",
		ContentType: "application/pdf",
		SizeBytes:   11,
		Body:        strings.NewReader("fir content"),
	})
	require.NoError(t, err)
	assert.Equal(t, "fir content", string(f.store.objects[u.ObjectKey]))
	require.Len(t, f.uploads.Uploads, 1)

	url, err := f.svc.DownloadURL(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Contains(t, url, u.ObjectKey)
	assert.Contains(t, url, "fir.pdf")
}

func TestUpload_ValidationWritesNothing(t *testing.T) {
	t.Parallel()
	f := newFixture()

	_, err := f.svc.Upload(context.Background(), UploadInput{
		CaseID:    "HRPM-001",
		FileName:  "",
		SizeBytes: 5,
		Body:      strings.NewReader("data"),
	})
	require.Error(t, err)
	assert.Empty(t, f.store.objects)
	assert.Empty(t, f.uploads.Uploads)
}

func TestExtract_PersistsValidEvents(t *testing.T) {
	t.Parallel()
	f := newFixture()

	u, err := f.svc.Upload(context.Background(), UploadInput{
		CaseID:    "HRPM-001",
		FileName:  "statement.txt",
		SizeBytes: 20,
		Body:      strings.NewReader("the accused forged…"),
	})
	require.NoError(t, err)

	result, err := f.svc.Extract(context.Background(), u.ID)
	require.NoError(t, err)

	require.Len(t, result.Events, 1, "event without a title is dropped")
	assert.Equal(t, "FIR registered", result.Events[0].Title)
	assert.Equal(t, u.ID, result.Events[0].UploadID)
	require.Len(t, result.SuggestedClaims, 1)
	assert.Equal(t, "PPC 420", result.SuggestedClaims[0].LegalSection)

	stored, err := f.events.ListByUpload(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestExtract_UnknownUpload(t *testing.T) {
	t.Parallel()
	f := newFixture()

	_, err := f.svc.Extract(context.Background(), "9e107d9d-0000-4000-8000-000000000000")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDocumentNotFound))
}

func TestExtract_WithoutExtractor(t *testing.T) {
	t.Parallel()
	f := newFixture()
	svc := NewService(f.uploads, f.events, f.store, nil, logging.NewNopLogger(), nil)

	u, err := f.svc.Upload(context.Background(), UploadInput{
		CaseID:    "HRPM-001",
		FileName:  "doc.txt",
		SizeBytes: 4,
		Body:      strings.NewReader("text"),
	})
	require.NoError(t, err)

	_, err = svc.Extract(context.Background(), u.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeExtractionUnavailable))
}

func TestDisplayNames_CoversUploadsAndEvents(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()

	u, err := f.svc.Upload(ctx, UploadInput{
		CaseID:    "HRPM-001",
		FileName:  "fir.pdf",
		SizeBytes: 3,
		Body:      strings.NewReader("abc"),
	})
	require.NoError(t, err)

	ev, err := domaindoc.NewExtractedEvent("HRPM-001", u.ID, "Asset seizure", 0.7)
	require.NoError(t, err)
	require.NoError(t, f.events.CreateBatch(ctx, []*domaindoc.ExtractedEvent{ev}))

	names, err := f.svc.DisplayNames(ctx, "HRPM-001")
	require.NoError(t, err)
	assert.Equal(t, "fir.pdf", names[u.ID])
	assert.Equal(t, "Asset seizure", names[ev.ID])
}
