package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/apperrors"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/model"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/pricedata"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/repository"
)

// parseWorkers bounds concurrent CSV parsing during a bulk import.
const parseWorkers = 4

// priceFileSuffix is the naming convention for per-security price files,
// e.g. tata_motors_daily.csv for the security keyed "tata_motors".
const priceFileSuffix = "_daily.csv"

// stocklistEntry mirrors one entry of the stocklist.json catalog file.
type stocklistEntry struct {
	Name     string `json:"name"`
	Filename string `json:"filename"`
}

// actionRecord mirrors one entry of the corporate_actions.json lookup,
// which groups records by security key.
type actionRecord struct {
	Date        string  `json:"date"`
	Factor      float64 `json:"factor"`
	Description string  `json:"description"`
}

// parsedFile is the in-memory result of parsing one price CSV.
type parsedFile struct {
	key     string
	file    string
	series  []model.PricePoint
	skipped []pricedata.SkippedRow
}

// ImportService loads price CSV files and corporate action records from a
// data directory into the database. The directory layout follows the
// scraping convention: <key>_daily.csv per security, plus optional
// stocklist.json (catalog) and corporate_actions.json (events by key).
type ImportService struct {
	securityRepo *repository.SecurityRepository
	dataDir      string
}

// NewImportService creates a new ImportService reading from dataDir.
func NewImportService(securityRepo *repository.SecurityRepository, dataDir string) *ImportService {
	return &ImportService{
		securityRepo: securityRepo,
		dataDir:      dataDir,
	}
}

// ImportAll imports everything found in the data directory:
//
//  1. stocklist.json entries become securities (existing keys are kept).
//  2. *_daily.csv files are parsed concurrently and their rows inserted;
//     files for unknown keys create a bare security on the fly.
//  3. corporate_actions.json replaces each listed security's action list.
//
// Per-row parse failures are reported as warnings in the summary; a file
// whose every row is invalid is skipped with a warning. Only I/O and
// database failures abort the import.
func (s *ImportService) ImportAll(ctx context.Context) (model.ImportSummary, error) {
	summary := model.ImportSummary{}

	if err := s.importStocklist(ctx); err != nil {
		return summary, err
	}

	files, err := s.findPriceFiles()
	if err != nil {
		return summary, err
	}

	parsed, warnings, err := s.parsePriceFiles(ctx, files)
	if err != nil {
		return summary, err
	}
	summary.Warnings = append(summary.Warnings, warnings...)

	for _, pf := range parsed {
		security, err := s.ensureSecurity(ctx, pf.key)
		if err != nil {
			return summary, err
		}

		inserted, err := s.securityRepo.InsertPrices(ctx, security.ID, pf.series)
		if err != nil {
			return summary, fmt.Errorf("%w: %s: %v", apperrors.ErrFailedToImportPrices, pf.file, err)
		}

		summary.FilesProcessed++
		summary.RowsImported += inserted
		summary.RowsSkipped += len(pf.skipped)
		for _, skip := range pf.skipped {
			summary.Warnings = append(summary.Warnings, model.ImportWarning{
				File:   pf.file,
				Line:   skip.Line,
				Reason: skip.Reason,
			})
		}
	}

	if err := s.importCorporateActions(ctx); err != nil {
		return summary, err
	}

	return summary, nil
}

// findPriceFiles lists the *_daily.csv files in the data directory.
func (s *ImportService) findPriceFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory %s: %w", s.dataDir, err)
	}

	files := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), priceFileSuffix) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	return files, nil
}

// parsePriceFiles parses CSV files concurrently with a bounded worker group.
// Parsing is CPU/IO-bound and independent per file; inserts happen later on
// a single goroutine since SQLite serializes writers anyway.
func (s *ImportService) parsePriceFiles(ctx context.Context, files []string) ([]parsedFile, []model.ImportWarning, error) {
	var mu sync.Mutex
	parsed := []parsedFile{}
	warnings := []model.ImportWarning{}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parseWorkers)

	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			f, err := os.Open(filepath.Join(s.dataDir, file))
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", file, err)
			}
			defer f.Close()

			series, skipped, err := pricedata.ParseCSV(f)
			if err != nil {
				// Schema problems and fully-invalid files are reported,
				// not fatal to the rest of the import.
				if errors.Is(err, apperrors.ErrMalformedSchema) || errors.Is(err, apperrors.ErrEmptyOrInvalidData) {
					mu.Lock()
					warnings = append(warnings, model.ImportWarning{File: file, Reason: err.Error()})
					mu.Unlock()
					return nil
				}
				return fmt.Errorf("failed to parse %s: %w", file, err)
			}

			mu.Lock()
			parsed = append(parsed, parsedFile{
				key:     strings.TrimSuffix(file, priceFileSuffix),
				file:    file,
				series:  series,
				skipped: skipped,
			})
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	sort.Slice(parsed, func(a, b int) bool { return parsed[a].key < parsed[b].key })

	return parsed, warnings, nil
}

// importStocklist creates securities from stocklist.json. A missing file is
// not an error; securities are then created from CSV filenames instead.
func (s *ImportService) importStocklist(ctx context.Context) error {
	data, err := os.ReadFile(filepath.Join(s.dataDir, "stocklist.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read stocklist.json: %w", err)
	}

	var entries []stocklistEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse stocklist.json: %w", err)
	}

	for _, entry := range entries {
		key := strings.TrimSuffix(entry.Filename, priceFileSuffix)
		if key == "" {
			continue
		}

		_, err := s.securityRepo.GetSecurityByKey(key)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrSecurityNotFound) {
			return err
		}

		security := model.Security{
			ID:       uuid.New().String(),
			Name:     entry.Name,
			Key:      key,
			Currency: "INR",
		}
		if err := s.securityRepo.InsertSecurity(ctx, &security); err != nil {
			return err
		}
	}

	return nil
}

// importCorporateActions replaces action lists from corporate_actions.json.
// A missing file means no actions, which is valid. Records with unparseable
// dates or non-positive factors are skipped with a log line.
func (s *ImportService) importCorporateActions(ctx context.Context) error {
	data, err := os.ReadFile(filepath.Join(s.dataDir, "corporate_actions.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read corporate_actions.json: %w", err)
	}

	var byKey map[string][]actionRecord
	if err := json.Unmarshal(data, &byKey); err != nil {
		return fmt.Errorf("failed to parse corporate_actions.json: %w", err)
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, strings.TrimSuffix(key, priceFileSuffix))
	}
	sort.Strings(keys)

	for _, key := range keys {
		records := byKey[key]
		if records == nil {
			records = byKey[key+priceFileSuffix]
		}

		security, err := s.securityRepo.GetSecurityByKey(key)
		if errors.Is(err, apperrors.ErrSecurityNotFound) {
			log.Printf("corporate_actions.json references unknown security %q, skipping", key)
			continue
		}
		if err != nil {
			return err
		}

		actions := make([]model.CorporateAction, 0, len(records))
		for _, record := range records {
			date, err := pricedata.ParseFlexibleDate(record.Date)
			if err != nil {
				log.Printf("skipping corporate action for %q: bad date %q", key, record.Date)
				continue
			}
			if record.Factor <= 0 {
				log.Printf("skipping corporate action for %q: non-positive factor %v", key, record.Factor)
				continue
			}
			actions = append(actions, model.CorporateAction{
				SecurityID:  security.ID,
				Date:        date,
				Factor:      record.Factor,
				Description: record.Description,
			})
		}

		if err := s.securityRepo.ReplaceCorporateActions(ctx, security.ID, actions); err != nil {
			return err
		}
	}

	return nil
}

// ensureSecurity returns the security for a CSV key, creating a bare entry
// named after the key when the catalog has no record of it.
func (s *ImportService) ensureSecurity(ctx context.Context, key string) (model.Security, error) {
	security, err := s.securityRepo.GetSecurityByKey(key)
	if err == nil {
		return security, nil
	}
	if !errors.Is(err, apperrors.ErrSecurityNotFound) {
		return model.Security{}, err
	}

	security = model.Security{
		ID:       uuid.New().String(),
		Name:     titleFromKey(key),
		Key:      key,
		Currency: "INR",
	}
	if err := s.securityRepo.InsertSecurity(ctx, &security); err != nil {
		return model.Security{}, err
	}

	return security, nil
}

// titleFromKey turns "tata_motors" into "Tata Motors".
func titleFromKey(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
