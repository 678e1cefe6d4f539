package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/saygox/duckdb-httpd-log/internal/scan"
)

func runConf(args []string) error {
	fs := flag.NewFlagSet("conf", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: httpdlog conf <path-to-httpd.conf>")
	}

	entries, err := scan.ListConfEntries(fs.Arg(0))
	if err != nil {
		return err
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	fmt.Fprintln(w, "log_type\tformat_type\tnickname\tformat_string\tconfig_file\tline_number")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n", e.LogType, e.FormatType, e.Nickname, e.FormatString, e.ConfigFile, e.LineNumber)
	}
	return nil
}
