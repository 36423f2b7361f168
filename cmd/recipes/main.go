// Command recipes browses and edits the recipe collection from the terminal.
// It keeps one signed-in user across invocations in the configured store.
package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/joho/godotenv"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/errs"
)

func main() {
	_ = godotenv.Load()

	if err := execute(os.Args[1:], config.LoadConfig, os.Stdout, os.Stderr); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func printError(err error) {
	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}
	fmt.Fprintln(os.Stderr, "Error: please fix the following:")
	fields := make([]string, 0, len(verr.Fields))
	for f := range verr.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", f, verr.Fields[f])
	}
}
