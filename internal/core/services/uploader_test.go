package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
)

func legacyRecord(id, content string) domain.RawRecord {
	return domain.RawRecord{ID: json.Number(id), Content: content}
}

func structuredRecord(id string) domain.RawRecord {
	return domain.RawRecord{
		ID:          json.Number(id),
		Daire:       strptr("14. Hukuk Dairesi"),
		EsasNo:      strptr("2011/2628"),
		KararNo:     strptr("2011/3698"),
		KararTarihi: strptr("23.03.2011"),
		Content:     "gerekçe metni",
	}
}

func TestIngest_LegacyBatchSharesOneLocator(t *testing.T) {
	index := newFakeIndex()
	blobs := newFakeBlobStore()
	extractor := &fakeExtractor{fields: domain.ExtractedFields{Daire: strptr("14. Hukuk Dairesi")}}
	u := NewUploader(index, blobs, extractor, 100)

	records := []domain.RawRecord{
		legacyRecord("1", "birinci karar metni"),
		legacyRecord("2", "ikinci karar metni"),
		legacyRecord("3", "üçüncü karar metni"),
	}

	stats, err := u.Ingest(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Processed)
	assert.Equal(t, 0, stats.Dropped)
	assert.Equal(t, 1, blobs.uploads)

	// All index rows share the single batch locator, and fetching that
	// locator yields an object for every id.
	var locator string
	for loc := range blobs.batches {
		locator = loc
	}
	require.NotEmpty(t, locator)

	for id := int64(1); id <= 3; id++ {
		row, ok := index.rows[id]
		require.True(t, ok, "row %d missing", id)
		assert.Equal(t, locator, row.FullTextURL)
	}

	batch := blobs.FetchFullText(context.Background(), locator)
	require.Len(t, batch, 3)
	seen := map[string]bool{}
	for _, obj := range batch {
		seen[obj.ID] = true
	}
	assert.True(t, seen["1"] && seen["2"] && seen["3"])
}

func TestIngest_BlobFailureLeavesIndexUntouched(t *testing.T) {
	index := newFakeIndex()
	blobs := newFakeBlobStore()
	blobs.uploadErr = errors.New("storage down")
	u := NewUploader(index, blobs, &fakeExtractor{}, 100)

	stats, err := u.Ingest(context.Background(), []domain.RawRecord{
		legacyRecord("1", "metin"),
		legacyRecord("2", "metin"),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Processed)
	assert.Equal(t, 1, stats.FailedBatches)
	assert.Empty(t, index.rows)
	assert.Zero(t, index.upserts)
}

func TestIngest_IndexFailureOrphansBlob(t *testing.T) {
	index := newFakeIndex()
	index.upsertErr = errors.New("index down")
	blobs := newFakeBlobStore()
	u := NewUploader(index, blobs, &fakeExtractor{}, 100)

	stats, err := u.Ingest(context.Background(), []domain.RawRecord{legacyRecord("1", "metin")})
	require.NoError(t, err)

	// Blob write happened, index write did not; no rollback.
	assert.Equal(t, 1, blobs.uploads)
	assert.Equal(t, 1, stats.FailedBatches)
	assert.Equal(t, 0, stats.Processed)
	assert.Empty(t, index.rows)
}

func TestIngest_BatchCapacityTriggersFlush(t *testing.T) {
	index := newFakeIndex()
	blobs := newFakeBlobStore()
	u := NewUploader(index, blobs, &fakeExtractor{}, 2)

	records := []domain.RawRecord{
		legacyRecord("1", "a"),
		legacyRecord("2", "b"),
		legacyRecord("3", "c"),
	}

	stats, err := u.Ingest(context.Background(), records)
	require.NoError(t, err)

	// Two flushes: one full batch of 2 and the remainder of 1.
	assert.Equal(t, 2, blobs.uploads)
	assert.Equal(t, 2, index.upserts)
	assert.Equal(t, 3, stats.Processed)
}

func TestIngest_DropsUnusableIDs(t *testing.T) {
	index := newFakeIndex()
	blobs := newFakeBlobStore()
	u := NewUploader(index, blobs, &fakeExtractor{}, 100)

	records := []domain.RawRecord{
		legacyRecord("", "içerik"),          // missing id
		legacyRecord("abc", "içerik"),       // non-numeric id
		legacyRecord("-5", "içerik"),        // non-positive id
		legacyRecord("7", ""),               // legacy without content
		legacyRecord("8", "geçerli içerik"), // kept
	}

	stats, err := u.Ingest(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 4, stats.Dropped)
	_, ok := index.rows[8]
	assert.True(t, ok)
}

func TestIngest_ProvidedFieldsWinOverExtraction(t *testing.T) {
	index := newFakeIndex()
	blobs := newFakeBlobStore()
	// The extractor disagrees with the provided fields on purpose.
	extractor := &fakeExtractor{fields: domain.ExtractedFields{
		Daire:       strptr("99. Ceza Dairesi"),
		EsasNo:      strptr("1999/1"),
		KararNo:     strptr("1999/2"),
		KararTarihi: strptr("1999-01-01"),
	}}
	u := NewUploader(index, blobs, extractor, 100)

	_, err := u.Ingest(context.Background(), []domain.RawRecord{structuredRecord("10")})
	require.NoError(t, err)

	row := index.rows[10]
	require.NotNil(t, row.Daire)
	assert.Equal(t, "14. Hukuk Dairesi", *row.Daire)
	assert.Equal(t, "2011/2628", *row.EsasNo)
	assert.Equal(t, "2011/3698", *row.KararNo)
	// Provided API date is converted to ISO, not replaced by extraction.
	assert.Equal(t, "2011-03-23", *row.KararTarihi)
}

func TestIngest_ExtractionFillsMissingStructuredFields(t *testing.T) {
	index := newFakeIndex()
	blobs := newFakeBlobStore()
	extractor := &fakeExtractor{fields: domain.ExtractedFields{
		KararTarihi: strptr("2011-03-23"),
	}}
	u := NewUploader(index, blobs, extractor, 100)

	rec := domain.RawRecord{
		ID:      json.Number("11"),
		Daire:   strptr("14. Hukuk Dairesi"),
		EsasNo:  strptr("2011/2628"),
		Content: "metin",
		// KararTarihi missing: extraction may fill it.
	}

	_, err := u.Ingest(context.Background(), []domain.RawRecord{rec})
	require.NoError(t, err)

	row := index.rows[11]
	require.NotNil(t, row.KararTarihi)
	assert.Equal(t, "2011-03-23", *row.KararTarihi)
	assert.Equal(t, 1, extractor.calls)
}

func TestIngest_TruncatesLongSummaries(t *testing.T) {
	index := newFakeIndex()
	blobs := newFakeBlobStore()
	u := NewUploader(index, blobs, &fakeExtractor{}, 100)

	rec := legacyRecord("12", strings.Repeat("uzun ", 200))
	rec.Ozet = strings.Repeat("ö", 400)

	_, err := u.Ingest(context.Background(), []domain.RawRecord{rec})
	require.NoError(t, err)

	row := index.rows[12]
	assert.Equal(t, domain.OzetMaxLen+3, len([]rune(row.Ozet)))
	assert.True(t, strings.HasSuffix(row.Ozet, "..."))
}

func TestIngest_MetadataOnlyStructuredRecordGetsPlaceholder(t *testing.T) {
	index := newFakeIndex()
	blobs := newFakeBlobStore()
	extractor := &fakeExtractor{}
	u := NewUploader(index, blobs, extractor, 100)

	rec := structuredRecord("13")
	rec.Content = ""

	_, err := u.Ingest(context.Background(), []domain.RawRecord{rec})
	require.NoError(t, err)

	var batch []domain.StorageObject
	for _, b := range blobs.batches {
		batch = b
	}
	require.Len(t, batch, 1)
	assert.Equal(t, noContentPlaceholder, batch[0].Content)
	// No content means nothing to extract from.
	assert.Zero(t, extractor.calls)
}

func TestIngestFile_RoundTrip(t *testing.T) {
	index := newFakeIndex()
	blobs := newFakeBlobStore()
	u := NewUploader(index, blobs, &fakeExtractor{}, 100)

	records := []domain.RawRecord{legacyRecord("21", "dosya içeriği")}
	data, err := json.Marshal(records)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "dump.json")
	require.NoError(t, os.WriteFile(path, data, 0600))

	stats, err := u.IngestFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Processed)
}

func TestIngestFile_UndecodableIsFatal(t *testing.T) {
	u := NewUploader(newFakeIndex(), newFakeBlobStore(), &fakeExtractor{}, 100)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("INSERT INTO decisions"), 0600))

	_, err := u.IngestFile(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngestFile_MissingFile(t *testing.T) {
	u := NewUploader(newFakeIndex(), newFakeBlobStore(), &fakeExtractor{}, 100)

	_, err := u.IngestFile(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestIngest_ReingestionOverwrites(t *testing.T) {
	index := newFakeIndex()
	blobs := newFakeBlobStore()
	extractor := &fakeExtractor{fields: domain.ExtractedFields{Daire: strptr("A")}}
	u := NewUploader(index, blobs, extractor, 100)

	_, err := u.Ingest(context.Background(), []domain.RawRecord{legacyRecord("5", "eski")})
	require.NoError(t, err)

	// Same id again, extractor now finds nothing: last write wins and
	// the old non-nil daire is gone.
	extractor.fields = domain.ExtractedFields{}
	_, err = u.Ingest(context.Background(), []domain.RawRecord{legacyRecord("5", "yeni")})
	require.NoError(t, err)

	row := index.rows[5]
	assert.Nil(t, row.Daire)
}
