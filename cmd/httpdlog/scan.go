package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/saygox/duckdb-httpd-log/internal/scan"
)

func runScan(args []string) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
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
	defer binding.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	cols := binding.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	fmt.Fprintln(w, strings.Join(names, "\t"))

	state := scan.NewState()
	return binding.ScanFiles(ctx, paths, state, func(row scan.Row) error {
		parts := make([]string, len(row.Values))
		for i, v := range row.Values {
			parts[i] = formatCell(v)
		}
		_, err := fmt.Fprintln(w, strings.Join(parts, "\t"))
		return err
	})
}

func formatCell(v any) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%v", v)
}
