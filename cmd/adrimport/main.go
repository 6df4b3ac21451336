// cmd/adrimport/main.go

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mmp/adrcore/pkg/ingest"
	"github.com/mmp/adrcore/pkg/ingest/aixm"
	"github.com/mmp/adrcore/pkg/ingest/objectdb"
	"github.com/mmp/adrcore/pkg/log"
	"github.com/mmp/adrcore/pkg/store"
	"github.com/mmp/adrcore/pkg/util"
)

const (
	exitSuccess = 0
	exitUsage   = 64 // EX_USAGE
	exitData    = 65 // EX_DATAERR
)

func main() {
	objDBDir := flag.String("d", ".", "object database directory")
	aupDBDir := flag.String("a", ".", "AUP store directory")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: adrimport [-d <obj-db-dir>] [-a <aup-db-dir>] [-v] file...")
		flag.PrintDefaults()
		os.Exit(exitUsage)
	}

	level := "info"
	if *verbose {
		level = "debug"
	}
	lg := log.New(level, *aupDBDir)

	os.Exit(run(*objDBDir, *aupDBDir, flag.Args(), lg))
}

func run(objDBDir, aupDBDir string, files []string, lg *log.Logger) int {
	odb, err := objectdb.Open(objDBDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitData
	}

	s, err := store.Open(filepath.Join(aupDBDir, "aup.db"), store.DefaultConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitData
	}
	defer s.Close()

	ing := &ingest.Ingester{ObjectDB: odb, Store: s, Log: lg}

	totalWarnings := 0
	for _, path := range files {
		if n, err := importFile(ing, path, lg); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			return exitData
		} else {
			totalWarnings += n
		}
	}

	if totalWarnings > 0 {
		fmt.Fprintf(os.Stderr, "%d warning(s)\n", totalWarnings)
	}
	return exitSuccess
}

func importFile(ing *ingest.Ingester, path string, lg *log.Logger) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var errs util.ErrorLogger
	src, err := aixm.Parse(f, &errs)
	if err != nil {
		return 0, err
	}

	ing.Errors = util.ErrorLogger{}
	if err := ing.Run(src); err != nil {
		return 0, err
	}
	ing.Errors.PrintErrors(lg)
	errs.PrintErrors(lg)

	return errs.Count() + ing.Errors.Count(), nil
}
