// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package index

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/google/renameio/v2"

	xglog "github.com/ManuGH/surtd/internal/log"
)

// Export writes every record to path as plain-text CDX-style lines,
// one record per line, in key order:
//
//	<surt> <timestamp> <url> <status> <digest>
//
// The write is atomic and durable: the file appears complete or not at
// all, fsynced before rename.
func (s *Store) Export(ctx context.Context, path string) (int, error) {
	logger := xglog.WithComponentFromContext(ctx, "index")

	pendingFile, err := renameio.NewPendingFile(path)
	if err != nil {
		return 0, fmt.Errorf("index: create pending export file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending export file")
		}
	}()

	w := bufio.NewWriter(pendingFile)
	records, err := s.ScanPrefix(ctx, "", 0)
	if err != nil {
		return 0, err
	}
	for _, rec := range records {
		digest := rec.Digest
		if digest == "" {
			digest = "-"
		}
		_, err := fmt.Fprintf(w, "%s %s %s %s %s\n",
			rec.SURT,
			rec.Timestamp.UTC().Format(tsLayout),
			rec.URL,
			strconv.Itoa(rec.Status),
			digest,
		)
		if err != nil {
			return 0, fmt.Errorf("index: write export line: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("index: flush export: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return 0, fmt.Errorf("index: atomically replace export file: %w", err)
	}

	logger.Info().
		Int(xglog.FieldCount, len(records)).
		Str("path", path).
		Msg("index exported")
	return len(records), nil
}
