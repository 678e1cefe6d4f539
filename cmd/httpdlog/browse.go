package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/saygox/duckdb-httpd-log/internal/scan"
	"github.com/saygox/duckdb-httpd-log/internal/tui"
)

// rowBatchSize bounds how many rows accumulate before a RowBatchMsg flushes,
// so the browser updates incrementally on large files instead of blocking
// until the whole scan finishes.
const rowBatchSize = 200

func runBrowse(args []string) error {
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	bf := registerBindFlags(fs, loadDefaults(args))
	if err := fs.Parse(args); err != nil {
		return err
	}

	paths, err := bf.resolvePaths()
	if err != nil {
		return err
	}

	binding, err := scan.Bind(bf.options(paths))
	if err != nil {
		return fmt.Errorf("bind: %w", err)
	}

	model := tui.NewModel(columnNames(binding), strings.Join(paths, ","))
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	scanCtx, scanCancel := context.WithCancel(ctx)
	defer scanCancel()
	go streamRows(scanCtx, binding, paths, p)

	if bf.watchConf && bf.conf != "" {
		go watchConf(ctx, scanCancel, bf, paths, p)
	}

	_, err = p.Run()
	cancel()
	binding.Close()
	return err
}

func columnNames(b *scan.Binding) []string {
	cols := b.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// streamRows scans every path and forwards rows to the running program in
// batches, so the TUI can render progress instead of blocking until done.
func streamRows(ctx context.Context, binding *scan.Binding, paths []string, p *tea.Program) {
	batch := make([]tui.Entry, 0, rowBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		p.Send(tui.RowBatchMsg{Rows: append([]tui.Entry(nil), batch...)})
		batch = batch[:0]
	}

	state := scan.NewState()
	err := binding.ScanFiles(ctx, paths, state, func(row scan.Row) error {
		parseError := false
		if i := indexOf(binding, "parse_error"); i >= 0 && i < len(row.Values) {
			if b, ok := row.Values[i].(bool); ok {
				parseError = b
			}
		}
		batch = append(batch, tui.Entry{Values: row.Values, ParseError: parseError})
		if len(batch) >= rowBatchSize {
			flush()
		}
		return nil
	})
	flush()
	if err != nil && ctx.Err() == nil {
		p.Send(tui.ErrMsg{Err: err})
	}
	p.Send(tui.DoneMsg{})
}

func indexOf(b *scan.Binding, name string) int {
	for i, c := range b.Columns() {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// watchConf re-binds the format whenever bf.conf changes on disk, resetting
// the browser's row buffer to match the new schema. It never watches the
// scanned log files themselves.
func watchConf(ctx context.Context, cancelScan context.CancelFunc, bf *bindFlags, paths []string, p *tea.Program) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.Send(tui.ErrMsg{Err: fmt.Errorf("watch-conf: %w", err)})
		return
	}
	defer watcher.Close()

	dir := filepath.Dir(bf.conf)
	if err := watcher.Add(dir); err != nil {
		p.Send(tui.ErrMsg{Err: fmt.Errorf("watch-conf: watching %s: %w", dir, err)})
		return
	}

	// cancelScan stops the initial streamRows started by runBrowse; after the
	// first rebind this is replaced by the cancel of the rescan it started.
	stopPrevious := cancelScan
	defer stopPrevious()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			abs, _ := filepath.Abs(ev.Name)
			confAbs, _ := filepath.Abs(bf.conf)
			if abs != confAbs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}

			binding, err := scan.Bind(bf.options(paths))
			if err != nil {
				p.Send(tui.ErrMsg{Err: fmt.Errorf("watch-conf: re-bind: %w", err)})
				continue
			}
			p.Send(tui.FormatChangedMsg{ColumnNames: columnNames(binding)})

			stopPrevious()
			rescanCtx, rescanCancel := context.WithCancel(ctx)
			stopPrevious = rescanCancel
			go func() {
				streamRows(rescanCtx, binding, paths, p)
				binding.Close()
			}()

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
