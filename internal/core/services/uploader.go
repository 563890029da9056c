package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
	"github.com/emsal-labs/emsal-cli/internal/core/ports/driven"
	"github.com/emsal-labs/emsal-cli/internal/core/ports/driving"
	"github.com/emsal-labs/emsal-cli/internal/logger"
)

// Ensure Uploader implements the interface.
var _ driving.IngestService = (*Uploader)(nil)

// noContentPlaceholder marks metadata-only records in the blob store.
const noContentPlaceholder = "Full text not available (metadata-only download)."

// Uploader normalises heterogeneous raw records, groups them into
// fixed-size batches and orchestrates the dual-write: full content to
// the blob store first, then metadata carrying the batch locator to
// the index. A batch is all-or-nothing from the index's point of view;
// the index never references content that was not durably stored.
type Uploader struct {
	index     driven.MetadataIndex
	blobs     driven.BlobStore
	extractor driven.Extractor
	batchSize int
}

// batchItem pairs the two shapes of one record through a flush.
type batchItem struct {
	object domain.StorageObject
	entry  domain.IndexEntry
}

// NewUploader creates an uploader. batchSize <= 0 selects the default
// capacity of 100.
func NewUploader(index driven.MetadataIndex, blobs driven.BlobStore, extractor driven.Extractor, batchSize int) *Uploader {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Uploader{
		index:     index,
		blobs:     blobs,
		extractor: extractor,
		batchSize: batchSize,
	}
}

// Ingest processes raw records strictly in order, flushing each full
// batch before the next record is considered and the remainder when
// the input is exhausted. A failed batch is logged and skipped; the
// pipeline continues with the next one.
func (u *Uploader) Ingest(ctx context.Context, records []domain.RawRecord) (*driving.IngestStats, error) {
	stats := &driving.IngestStats{}
	logger.Info("Ingesting %d records", len(records))

	batch := make([]batchItem, 0, u.batchSize)
	for i := range records {
		item, ok := u.normalise(&records[i])
		if !ok {
			stats.Dropped++
			continue
		}
		batch = append(batch, item)

		if len(batch) >= u.batchSize {
			u.flush(ctx, batch, stats)
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		u.flush(ctx, batch, stats)
	}

	logger.Info("Ingest done: %d indexed, %d dropped, %d failed batches",
		stats.Processed, stats.Dropped, stats.FailedBatches)
	return stats, nil
}

// IngestFile decodes a JSON array of raw records and ingests it.
// An undecodable file is fatal for the run.
func (u *Uploader) IngestFile(ctx context.Context, path string) (*driving.IngestStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}

	var records []domain.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s is not a JSON array of records: %v", domain.ErrInvalidInput, path, err)
	}

	return u.Ingest(ctx, records)
}

// normalise classifies one raw record and builds its storage object
// and index entry. Returns false when the record must be dropped.
//
// Field precedence is explicit: fields the record already carries win;
// extraction only fills the gaps. Legacy records have no provided
// fields, so there extraction is the sole source.
func (u *Uploader) normalise(rec *domain.RawRecord) (batchItem, bool) {
	id, ok := rec.NumericID()
	if !ok {
		logger.Debug("Dropping record with unusable id %q", rec.ID.String())
		return batchItem{}, false
	}

	kind := rec.Classify()

	var fields domain.ExtractedFields
	content := rec.Content
	ozet := rec.Ozet

	switch kind {
	case domain.KindStructured:
		fields = domain.ExtractedFields{
			Daire:       rec.Daire,
			EsasNo:      rec.EsasNo,
			KararNo:     rec.KararNo,
			KararTarihi: normaliseDate(rec.KararTarihi),
		}
		if content != "" {
			extracted := u.extractor.Extract(content)
			fillMissing(&fields, extracted)
		} else {
			content = noContentPlaceholder
		}
	case domain.KindLegacy:
		if content == "" {
			logger.Debug("Dropping legacy record %d with no content", id)
			return batchItem{}, false
		}
		fields = u.extractor.Extract(content)
	default:
		return batchItem{}, false
	}

	if ozet == "" {
		ozet = summaryPrefix(content)
	}
	ozet = domain.TruncateOzet(ozet)

	item := batchItem{
		object: domain.StorageObject{
			ID:           strconv.FormatInt(id, 10),
			Daire:        fields.Daire,
			EsasNo:       fields.EsasNo,
			KararNo:      fields.KararNo,
			KararTarihi:  fields.KararTarihi,
			Content:      content,
			Ozet:         ozet,
			SearchedTerm: rec.SearchedTerm,
		},
		entry: domain.IndexEntry{
			ID:          id,
			Daire:       fields.Daire,
			EsasNo:      fields.EsasNo,
			KararNo:     fields.KararNo,
			KararTarihi: fields.KararTarihi,
			Ozet:        ozet,
			// FullTextURL is stamped at flush time.
		},
	}
	return item, true
}

// flush performs the dual-write for one batch. Blob first: a failed
// upload abandons the batch with no index writes at all. Only after
// the content is durably stored does the locator get stamped onto
// every entry and the whole batch upserted in one call. An index
// failure leaves an orphaned blob, which is acceptable; the index is
// the discovery path.
func (u *Uploader) flush(ctx context.Context, batch []batchItem, stats *driving.IngestStats) {
	logger.Section("Flush")
	logger.Info("Uploading batch of %d records", len(batch))

	objects := make([]domain.StorageObject, len(batch))
	for i := range batch {
		objects[i] = batch[i].object
	}

	locator, err := u.blobs.UploadBatch(ctx, objects)
	if err != nil {
		logger.Warn("Skipping batch of %d: blob upload failed: %v", len(batch), err)
		stats.FailedBatches++
		return
	}
	if locator == "" {
		logger.Warn("Skipping batch of %d: blob upload returned no locator", len(batch))
		stats.FailedBatches++
		return
	}

	entries := make([]domain.IndexEntry, len(batch))
	for i := range batch {
		entry := batch[i].entry
		entry.FullTextURL = locator
		entries[i] = entry
	}

	count, err := u.index.UpsertMetadata(ctx, entries)
	if err != nil {
		// The blob is orphaned now. No rollback is attempted.
		logger.Error("Batch of %d lost: index upsert failed after upload: %v", len(batch), err)
		stats.FailedBatches++
		return
	}

	stats.Processed += count
	logger.Info("Batch complete: %d rows indexed at %s", count, locator)
}

// fillMissing copies extracted fields into dst only where dst is nil.
func fillMissing(dst *domain.ExtractedFields, src domain.ExtractedFields) {
	if dst.Daire == nil {
		dst.Daire = src.Daire
	}
	if dst.EsasNo == nil {
		dst.EsasNo = src.EsasNo
	}
	if dst.KararNo == nil {
		dst.KararNo = src.KararNo
	}
	if dst.KararTarihi == nil {
		dst.KararTarihi = src.KararTarihi
	}
}

// normaliseDate converts the API's DD.MM.YYYY date to ISO form.
// Dates already in ISO form pass through; anything else is dropped.
func normaliseDate(date *string) *string {
	if date == nil {
		return nil
	}
	s := strings.TrimSpace(*date)
	if s == "" {
		return nil
	}
	if parts := strings.Split(s, "."); len(parts) == 3 {
		iso := parts[2] + "-" + parts[1] + "-" + parts[0]
		return &iso
	}
	if len(s) == 10 && s[4] == '-' && s[7] == '-' {
		return &s
	}
	return nil
}

// summaryPrefix takes the leading runes of content as a fallback
// summary. Shorter than the ozet cap so the marker only appears on
// real truncation.
func summaryPrefix(content string) string {
	runes := []rune(content)
	if len(runes) > 200 {
		return string(runes[:200])
	}
	return content
}
