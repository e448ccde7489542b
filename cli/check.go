// By Navid M (c)
// Date: 2025
// License: GPL3
//
// The check command parses many files in parallel and reports diagnostics.

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"orcaparse/parser"
	"orcaparse/renderer"
)

type checkResult struct {
	path  string
	name  string
	src   []byte
	diags []parser.Diagnostic
	err   error
}

func (a *app) checkCmd() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Report syntax errors in input files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers <= 0 {
				workers = a.cfg.Check.Workers
			}
			log := a.log.With("run", uuid.New().String())
			log.Info("check started", "files", len(args), "workers", workers)

			results := a.checkFiles(cmd, log, args, workers)

			out := cmd.OutOrStdout()
			failed, total := 0, 0
			for _, r := range results {
				if r.err != nil {
					failed++
					fmt.Fprintf(out, "%s: %v\n", r.name, r.err)
					continue
				}
				if len(r.diags) == 0 {
					continue
				}
				failed++
				total += len(r.diags)
				if err := renderer.WriteDiagnostics(out, r.name, r.src, r.diags, a.styles()); err != nil {
					return err
				}
			}

			log.Info("check finished", "failed", failed, "diagnostics", total)
			fmt.Fprintf(out, "checked %d %s: %d with errors (%d %s)\n",
				len(results), plural(len(results), "file", "files"),
				failed, total, plural(total, "diagnostic", "diagnostics"))
			if failed > 0 {
				return ErrInvalid
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "number of files parsed in parallel (default from config)")
	return cmd
}

// checkFiles parses paths with a bounded number of goroutines. Results keep
// the order of paths.
func (a *app) checkFiles(cmd *cobra.Command, log *slog.Logger, paths []string, workers int) []checkResult {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	workers = max(1, min(workers, len(paths)))

	results := make([]checkResult, len(paths))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = a.checkFile(cmd, log, paths[i])
			}
		}()
	}

feed:
	for i := range paths {
		select {
		case jobs <- i:
		case <-ctx.Done():
			for j := i; j < len(paths); j++ {
				results[j] = checkResult{path: paths[j], name: paths[j], err: ctx.Err()}
			}
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	return results
}

func (a *app) checkFile(cmd *cobra.Command, log *slog.Logger, path string) checkResult {
	opts := a.parseOptions(path, false)
	opts.Logger = log.With("file", opts.Filename)
	r := checkResult{path: path, name: opts.Filename}

	src, err := readInput(cmd, path)
	if err != nil {
		r.err = err
		return r
	}
	r.src = src
	_, perr := parser.Parse(src, opts)
	r.diags = parser.Diagnostics(perr)
	log.Debug("file checked", "file", r.name, "diagnostics", len(r.diags))
	return r
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
