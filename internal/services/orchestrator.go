package services

import (
	"context"
	"log"
	"sync"

	"talentsift/resume-screener/internal/models"
	"talentsift/resume-screener/internal/store"
)

const duplicateContentMessage = "Duplicate content detected"

// Orchestrator drives the per-resume lifecycle across the two pipeline
// stages. Parsing handles queued records in fixed-size batches, sequentially
// within a batch so duplicate detection sees every prior result. Analysis
// handles ready records in fixed-size batches, concurrently within a batch,
// joining on all outcomes before the next batch starts. One failure never
// aborts the run.
type Orchestrator interface {
	Run(ctx context.Context)
}

type orchestrator struct {
	store     *store.Store
	extractor Extractor
	analyzer  Analyzer
	names     NameResolver
	batchSize int
}

func NewOrchestrator(
	st *store.Store,
	extractor Extractor,
	analyzer Analyzer,
	names NameResolver,
	batchSize int,
) Orchestrator {
	if batchSize < 1 {
		batchSize = 1
	}
	return &orchestrator{
		store:     st,
		extractor: extractor,
		analyzer:  analyzer,
		names:     names,
		batchSize: batchSize,
	}
}

// Run implements Orchestrator.
func (o *orchestrator) Run(ctx context.Context) {
	defer o.store.EndRun()

	o.runParsing(ctx)
	summary := o.runAnalysis(ctx)

	o.store.SetSummary(summary)
	log.Printf("✅ Analysis run finished: %d attempted, %d succeeded, %d failed\n",
		summary.Attempted, summary.Succeeded, summary.Failed)
}

func (o *orchestrator) runParsing(ctx context.Context) {
	records := o.store.Records()

	// Text already extracted in earlier runs still counts for duplicate
	// detection.
	seenText := make(map[string]bool)
	var queued []models.ResumeRecord
	for _, rec := range records {
		if rec.Text != "" {
			seenText[rec.Text] = true
		}
		if rec.Status == models.StatusQueued {
			queued = append(queued, rec)
		}
	}

	for _, batch := range chunkRecords(queued, o.batchSize) {
		for _, rec := range batch {
			rec.Status = models.StatusParsing
			if err := o.store.Replace(rec); err != nil {
				log.Printf("⚠️  Skipping record %s: %v\n", rec.ID, err)
				continue
			}

			text, err := o.extractor.Extract(rec.Filename, rec.Data)
			if err != nil {
				o.failRecord(rec, err.Error())
				continue
			}
			if seenText[text] {
				o.failRecord(rec, duplicateContentMessage)
				continue
			}
			seenText[text] = true

			rec.Text = text
			rec.Data = nil
			rec.Status = models.StatusReady
			if err := o.store.Replace(rec); err != nil {
				log.Printf("⚠️  Failed to update record %s: %v\n", rec.ID, err)
			}
		}
	}
}

func (o *orchestrator) runAnalysis(ctx context.Context) models.BatchSummary {
	var ready []models.ResumeRecord
	for _, rec := range o.store.Records() {
		if rec.Status == models.StatusReady {
			ready = append(ready, rec)
		}
	}

	summary := models.BatchSummary{Attempted: len(ready)}
	if len(ready) == 0 {
		return summary
	}

	o.resolveDisplayNames(ctx, ready)
	jobText := o.store.Job().Text

	for _, batch := range chunkRecords(ready, o.batchSize) {
		results := make([]*models.AnalysisResult, len(batch))

		var wg sync.WaitGroup
		for i := range batch {
			rec := batch[i]
			rec.Status = models.StatusAnalyzing
			if err := o.store.Replace(rec); err != nil {
				log.Printf("⚠️  Skipping record %s: %v\n", rec.ID, err)
				continue
			}

			wg.Add(1)
			go func(i int, rec models.ResumeRecord) {
				defer wg.Done()

				result, err := o.analyzer.Analyze(ctx, rec.DisplayName, rec.Text, jobText)
				if err != nil {
					o.failRecord(rec, err.Error())
					return
				}

				rec.Status = models.StatusDone
				if err := o.store.Replace(rec); err != nil {
					log.Printf("⚠️  Failed to update record %s: %v\n", rec.ID, err)
				}
				results[i] = result
			}(i, rec)
		}
		wg.Wait()

		// Every call in the batch has settled; expose what succeeded before
		// the next batch starts.
		var batchResults []models.AnalysisResult
		for _, result := range results {
			if result != nil {
				batchResults = append(batchResults, *result)
				summary.Succeeded++
			} else {
				summary.Failed++
			}
		}
		if len(batchResults) > 0 {
			o.store.AppendResults(batchResults)
		}
	}

	return summary
}

// resolveDisplayNames asks the model for each candidate's name (falling back
// to the filename) in fixed-size concurrent batches, then de-duplicates the
// names across the whole run in record order.
func (o *orchestrator) resolveDisplayNames(ctx context.Context, ready []models.ResumeRecord) {
	names := make([]string, len(ready))

	offset := 0
	for _, batch := range chunkRecords(ready, o.batchSize) {
		var wg sync.WaitGroup
		for i := range batch {
			wg.Add(1)
			go func(i int, rec models.ResumeRecord) {
				defer wg.Done()
				names[offset+i] = o.names.ResolveName(ctx, rec.Text, rec.DisplayName)
			}(i, batch[i])
		}
		wg.Wait()
		offset += len(batch)
	}

	names = DeduplicateNames(names)

	for i := range ready {
		ready[i].DisplayName = names[i]
		if err := o.store.Replace(ready[i]); err != nil {
			log.Printf("⚠️  Failed to update display name for %s: %v\n", ready[i].ID, err)
		}
	}
}

func (o *orchestrator) failRecord(rec models.ResumeRecord, message string) {
	rec.Status = models.StatusError
	rec.ErrorMessage = message
	if err := o.store.Replace(rec); err != nil {
		log.Printf("⚠️  Failed to mark record %s as failed: %v\n", rec.ID, err)
	}
	o.store.SetLastError(message)
}

func chunkRecords(records []models.ResumeRecord, size int) [][]models.ResumeRecord {
	var chunks [][]models.ResumeRecord
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		chunks = append(chunks, records[start:end])
	}
	return chunks
}
