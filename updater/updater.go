// updater/updater.go
package updater

import (
	"fmt"
	"log"
	"net/url"
	"path"

	"github.com/sgcarsight/backend/config"
	"github.com/sgcarsight/backend/fetcher"
	"github.com/sgcarsight/backend/models"
)

// Fetcher is the slice of fetcher.Client the updater needs.
type Fetcher interface {
	DownloadArchive(url string) ([]byte, error)
	DiscoverArchiveURL(pageURL, linkText string) (string, error)
}

// Checksums is the slice of the meta store the updater needs. Read and write
// failures degrade to a cache miss here; a cold or unreachable checksum store
// must never abort an ingestion run.
type Checksums interface {
	GetChecksum(fileName string) (string, error)
	SaveChecksum(fileName, checksum string) error
}

// Options configures one dataset ingestion.
type Options struct {
	Dataset string // e.g. "cars"; used for logging and the result record
	Table   string
	Source  config.DatasetConfig
	// BypassChecksum skips the cached-checksum read so the run always parses
	// fresh data. Enabled outside production.
	BypassChecksum bool
}

// Run executes one fetch → checksum gate → parse → upsert cycle and reports
// the number of rows submitted for upsert. save is the typed store call; it
// shares the single composite-key upsert primitive with every other dataset.
//
// Any fetch, parse, or storage error propagates to the task runner, which
// fails this task's workflow step. An unchanged source file is not an error:
// it yields Skipped=true with zero records, and downstream steps gate on that.
func Run[T any](f Fetcher, checks Checksums, opts Options, save func([]T) (int, error)) (models.UpdateResult, error) {
	result := models.UpdateResult{Dataset: opts.Dataset, Table: opts.Table}

	archiveURL := opts.Source.URL
	if opts.Source.PageURL != "" {
		discovered, err := f.DiscoverArchiveURL(opts.Source.PageURL, opts.Source.LinkText)
		if err != nil {
			return result, fmt.Errorf("failed to discover archive URL for %s: %w", opts.Dataset, err)
		}
		archiveURL = discovered
	}
	if archiveURL == "" {
		return result, fmt.Errorf("no archive URL configured for %s", opts.Dataset)
	}

	data, err := f.DownloadArchive(archiveURL)
	if err != nil {
		return result, fmt.Errorf("failed to download %s archive: %w", opts.Dataset, err)
	}

	fileName := archiveFileName(archiveURL)
	result.Checksum = fetcher.Checksum(data)

	if opts.BypassChecksum {
		log.Printf("Updater: checksum cache bypassed for %s (non-production run).\n", opts.Dataset)
	} else {
		cached, err := checks.GetChecksum(fileName)
		if err != nil {
			// Treat as a miss; the pipeline must tolerate a cold cache.
			log.Printf("WARN Updater: checksum read failed for %s, treating as miss: %v\n", fileName, err)
		} else if cached != "" && cached == result.Checksum {
			log.Printf("Updater: %s unchanged (checksum %.12s), skipping parse and upsert.\n", opts.Dataset, result.Checksum)
			result.Skipped = true
			return result, nil
		}
	}

	member, err := fetcher.ExtractMember(data, opts.Source.Member)
	if err != nil {
		return result, fmt.Errorf("failed to extract CSV for %s: %w", opts.Dataset, err)
	}

	rows, err := fetcher.DecodeCSV[T](member)
	if err != nil {
		return result, fmt.Errorf("failed to parse %s CSV: %w", opts.Dataset, err)
	}

	processed, err := save(rows)
	if err != nil {
		return result, fmt.Errorf("failed to save %s rows: %w", opts.Dataset, err)
	}
	result.RecordsProcessed = processed

	if err := checks.SaveChecksum(fileName, result.Checksum); err != nil {
		log.Printf("WARN Updater: checksum write failed for %s: %v\n", fileName, err)
	}

	log.Printf("Updater: %s processed %d rows.\n", opts.Dataset, processed)
	return result, nil
}

func archiveFileName(archiveURL string) string {
	if u, err := url.Parse(archiveURL); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	return archiveURL
}
