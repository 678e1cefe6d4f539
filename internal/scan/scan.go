package scan

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/saygox/duckdb-httpd-log/internal/logextract"
	"github.com/saygox/duckdb-httpd-log/internal/logreader"
)

// ScanFile scans a single file sequentially, in file order, calling emit for
// every row — no intra-line parallelism. Cancellation is cooperative: ctx is
// checked between lines. state may be nil.
func (b *Binding) ScanFile(ctx context.Context, path string, state *State, emit func(Row) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("scan: opening %s: %w", path, err)
	}
	defer f.Close()

	reader := logreader.New(f)
	var scratch logextract.Scratch
	var buf []byte
	var lineNumber int64

	state.markInitialized()
	defer state.markFinished()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, ok, err := reader.ReadLine(buf)
		if err != nil {
			return fmt.Errorf("scan: reading %s: %w", path, err)
		}
		if !ok {
			return nil
		}
		buf = line
		lineNumber++

		if len(line) == 0 {
			continue
		}

		row, emitRow := b.extractRow(&scratch, line, path, lineNumber)
		if !emitRow {
			continue
		}
		if err := emit(row); err != nil {
			return err
		}
	}
}

// extractRow converts one non-empty line to a projected Row, or reports
// emitRow=false when the line should be silently dropped (a parse failure
// outside raw mode).
func (b *Binding) extractRow(scratch *logextract.Scratch, line []byte, path string, lineNumber int64) (Row, bool) {
	if b.pf == nil {
		// Unknown format, raw mode forced at bind time.
		rawLine := string(line)
		return b.project(nil, path, lineNumber, true, &rawLine), true
	}

	extracted, matched := logextract.Extract(scratch, b.pf, line, path, lineNumber, b.raw)
	if !matched {
		if !b.raw {
			return Row{}, false
		}
		return b.project(nil, path, lineNumber, true, extracted.RawLine), true
	}
	return b.project(extracted.Values, path, lineNumber, false, nil), true
}

// project assembles the full Columns()-ordered row from extracted values
// plus metadata and (optionally) GeoIP enrichment.
func (b *Binding) project(values []any, path string, lineNumber int64, parseError bool, rawLine *string) Row {
	var out []any

	if b.pf != nil {
		if values == nil {
			values = make([]any, len(b.pf.Schema(b.raw)))
		}
		out = append(out, values...)
	}

	out = append(out, path)
	if b.raw {
		var rawVal any
		if rawLine != nil {
			rawVal = *rawLine
		}
		out = append(out, lineNumber, parseError, rawVal)
	}

	if b.geo != nil {
		country, city := b.lookupGeo(values)
		out = append(out, country, city)
	}

	return Row{Values: out}
}

func (b *Binding) lookupGeo(values []any) (any, any) {
	if b.geoSourceIdx < 0 || b.geoSourceIdx >= len(values) {
		return nil, nil
	}
	ip, ok := values[b.geoSourceIdx].(string)
	if !ok || ip == "" {
		return nil, nil
	}
	info, found := b.geo(ip)
	if !found {
		return nil, nil
	}
	var country, city any
	if info.CountryISO != "" {
		country = info.CountryISO
	}
	if info.City != "" {
		city = info.City
	}
	return country, city
}

// ScanFiles scans each path concurrently, one goroutine per file bounded by
// GOMAXPROCS, preserving per-file ordering while leaving cross-file
// interleaving unspecified. state, if non-nil, is initialized
// once before the fan-out starts and finished once every file has drained —
// per-file states are not surfaced here, only the overall session.
func (b *Binding) ScanFiles(ctx context.Context, paths []string, state *State, emit func(Row) error) error {
	state.markInitialized()
	defer state.markFinished()

	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	errs := make(chan error, len(paths))

	var mu sync.Mutex // serializes emit across goroutines

	for _, path := range paths {
		path := path
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			err := b.ScanFile(ctx, path, nil, func(r Row) error {
				mu.Lock()
				defer mu.Unlock()
				return emit(r)
			})
			if err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
