// Command httpdlog reads Apache HTTPD access/error logs as typed rows,
// deriving the schema from a LogFormat string, a named format, or an
// httpd.conf file.
package main

import (
	"fmt"
	"os"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("httpdlog %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "scan":
		err = runScan(os.Args[2:])
	case "conf":
		err = runConf(os.Args[2:])
	case "browse":
		err = runBrowse(os.Args[2:])
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "httpdlog: unknown command %q\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: httpdlog <command> [flags]

commands:
  scan     scan one or more log files and print rows as tab-separated text
  conf     list LogFormat/CustomLog/ErrorLogFormat entries from an httpd.conf
  browse   open an interactive row browser

run "httpdlog <command> -h" for flags specific to that command.`)
}
