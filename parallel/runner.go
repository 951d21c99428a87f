package parallel

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Job is one file's unit of work.
type Job struct {
	Index int
	Name  string
	Src   string
	Dst   string
}

// describe formats a progress line for job out of n.
func (j Job) describe(op Op, n int) string {
	return fmt.Sprintf("%s %d/%d: %s -> %s", op, j.Index+1, n, j.Src, j.Dst)
}

// runner executes jobs and returns one error slot per job, in job order.
// Every runner returns only after all of its work has finished.
type runner interface {
	run(op Op, jobs []Job) []error
}

type serialRunner struct {
	logger  *log.Logger
	verbose bool
}

func (r serialRunner) run(op Op, jobs []Job) []error {
	errs := make([]error, len(jobs))
	for i, job := range jobs {
		if r.verbose {
			r.logger.Print(job.describe(op, len(jobs)))
		}
		errs[i] = op.Run(job.Src, job.Dst)
	}
	return errs
}

// threadPool runs jobs on a fixed number of goroutines. Workers claim the
// next unprocessed index from a shared counter, so every index is claimed by
// exactly one worker and no lock is held while a file is being coded.
type threadPool struct {
	workers int
	logger  *log.Logger
	verbose bool
}

func (p threadPool) run(op Op, jobs []Job) []error {
	errs := make([]error, len(jobs))
	var next atomic.Int64
	var wg sync.WaitGroup

	workers := min(p.workers, len(jobs))
	wg.Add(workers)
	for id := range workers {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1) - 1)
				if i >= len(jobs) {
					return
				}
				job := jobs[i]
				if p.verbose {
					p.logger.Printf("[worker %d] %s", id, job.describe(op, len(jobs)))
				}
				// each slot is written by the single worker that claimed it
				errs[i] = op.Run(job.Src, job.Dst)
			}
		}()
	}
	wg.Wait()
	return errs
}

// Launcher builds the command that performs op on one file in a separate
// process. The command must exit non-zero on failure.
type Launcher func(op Op, src, dst string) *exec.Cmd

// SelfLauncher returns a Launcher that re-executes the running binary with
// its hidden worker subcommand.
func SelfLauncher() (Launcher, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locating executable for worker processes: %w", err)
	}
	return func(op Op, src, dst string) *exec.Cmd {
		return exec.Command(exe, "worker", string(op), src, dst)
	}, nil
}

// processPool starts one process per job, all at once, and waits for every
// one of them to exit. Workers run to completion; there is no timeout.
type processPool struct {
	launch  Launcher
	logger  *log.Logger
	verbose bool
}

func (p processPool) run(op Op, jobs []Job) []error {
	errs := make([]error, len(jobs))
	var g errgroup.Group
	for i, job := range jobs {
		g.Go(func() error {
			cmd := p.launch(op, job.Src, job.Dst)
			var stderr bytes.Buffer
			cmd.Stderr = &stderr
			if err := cmd.Start(); err != nil {
				errs[i] = fmt.Errorf("%w: starting worker for %s: %w", ErrWorkerFailed, job.Name, err)
				return errs[i]
			}
			if p.verbose {
				p.logger.Printf("[pid %d] %s", cmd.Process.Pid, job.describe(op, len(jobs)))
			}
			if err := cmd.Wait(); err != nil {
				msg := strings.TrimSpace(stderr.String())
				errs[i] = fmt.Errorf("%w: %s: %w: %s", ErrWorkerFailed, job.Name, err, msg)
				return errs[i]
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil && p.verbose {
		p.logger.Printf("first worker failure: %v", err)
	}
	return errs
}
