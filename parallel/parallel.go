package parallel

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/dendrascience/huffarc/archive"
	"github.com/dendrascience/huffarc/huffman"
	"github.com/dendrascience/huffarc/util"
)

// Options configures a batch run. The zero value runs the thread pool with
// one worker per CPU and keeps artifacts in os.TempDir.
type Options struct {
	Strategy Strategy
	// Workers sizes the thread pool. Zero means DefaultWorkers.
	Workers int
	// TempDir holds the per-file artifacts. Empty means os.TempDir.
	TempDir string
	// Launcher starts worker processes for the Processes strategy. Nil means
	// SelfLauncher.
	Launcher Launcher
	// Logger receives skip and failure notices. Nil means log.Default.
	Logger *log.Logger
	// Verbose adds one progress line per file.
	Verbose bool
}

func (o Options) runner() (runner, error) {
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	switch o.Strategy {
	case Serial:
		return serialRunner{logger: o.Logger, verbose: o.Verbose}, nil
	case Threads, "":
		workers := o.Workers
		if workers <= 0 {
			workers = DefaultWorkers()
		}
		return threadPool{workers: workers, logger: o.Logger, verbose: o.Verbose}, nil
	case Processes:
		launch := o.Launcher
		if launch == nil {
			var err error
			if launch, err = SelfLauncher(); err != nil {
				return nil, err
			}
		}
		return processPool{launch: launch, logger: o.Logger, verbose: o.Verbose}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, string(o.Strategy))
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

func (o Options) tempDir() string {
	if o.TempDir == "" {
		return os.TempDir()
	}
	return o.TempDir
}

// FileError records why one file was left out of a batch.
type FileError struct {
	Name string
	Err  error
}

func (e FileError) Error() string { return e.Name + ": " + e.Err.Error() }

func (e FileError) Unwrap() error { return e.Err }

// Result summarizes a batch run.
type Result struct {
	// Files lists the files that were processed successfully, in archive
	// order.
	Files []string
	// Failed lists the files that were attempted and failed.
	Failed []FileError
	// Skipped lists directory entries that are not regular files. It is
	// only filled when packing.
	Skipped []string
}

// Err joins the per-file failures, or returns nil if there were none.
func (r Result) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failed))
	for i, f := range r.Failed {
		errs[i] = f
	}
	return fmt.Errorf("%d of %d files failed: %w",
		len(r.Failed), len(r.Failed)+len(r.Files), errors.Join(errs...))
}

// CompressDir compresses every regular file directly inside srcDir and
// writes the results to a new archive at archivePath. Entries that are not
// regular files are skipped. Files that fail to compress are left out of
// the archive and reported in the Result.
//
// The returned error is reserved for failures of the run as a whole: an
// unreadable source directory, an unwritable archive, or an unusable
// strategy.
func CompressDir(srcDir, archivePath string, opts Options) (Result, error) {
	run, err := opts.runner()
	if err != nil {
		return Result{}, err
	}
	logger := opts.logger()

	listing, err := util.ListRegularFiles(srcDir)
	if err != nil {
		return Result{}, fmt.Errorf("listing %s: %w", srcDir, err)
	}
	res := Result{Skipped: listing.Skipped}
	for _, name := range listing.Skipped {
		logger.Printf("skipping %s: not a regular file", name)
	}

	art := newArtifacts(opts.tempDir(), OpCompress)
	defer art.cleanup(len(listing.Files))

	jobs := make([]Job, len(listing.Files))
	for i, name := range listing.Files {
		jobs[i] = Job{Index: i, Name: name, Src: filepath.Join(srcDir, name), Dst: art.path(i)}
	}
	errs := run.run(OpCompress, jobs)

	// Only artifacts that exist after the barrier are archived, so the
	// declared count always matches what follows it.
	type ready struct {
		job  Job
		size int64
	}
	var ok []ready
	for i, job := range jobs {
		if errs[i] == nil {
			info, err := os.Stat(job.Dst)
			if err != nil {
				errs[i] = fmt.Errorf("%w: %w", ErrMissingArtifact, err)
			} else {
				ok = append(ok, ready{job: job, size: info.Size()})
				continue
			}
		}
		logger.Printf("leaving %s out of the archive: %v", job.Name, errs[i])
		res.Failed = append(res.Failed, FileError{Name: job.Name, Err: errs[i]})
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return res, fmt.Errorf("%w: %w", huffman.ErrDestinationUnwritable, err)
	}
	writeErr := func() error {
		aw, err := archive.NewWriter(out, len(ok))
		if err != nil {
			return err
		}
		for _, r := range ok {
			f, err := os.Open(r.job.Dst)
			if err != nil {
				return err
			}
			err = aw.WriteEntry(r.job.Name, r.size, f)
			f.Close()
			if err != nil {
				return fmt.Errorf("archiving %s: %w", r.job.Name, err)
			}
			res.Files = append(res.Files, r.job.Name)
		}
		return aw.Close()
	}()
	if closeErr := out.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(archivePath)
		res.Files = nil
		return res, fmt.Errorf("writing %s: %w", archivePath, writeErr)
	}
	return res, nil
}

// DecompressDir restores every entry of the archive at archivePath into
// dstDir, creating it if needed. Entries whose names are not plain file
// names, or that repeat an earlier name, are reported as failures and not
// written. Entries whose payload fails to decode are reported and the rest
// are still restored.
//
// A structurally corrupt archive fails the whole run.
func DecompressDir(archivePath, dstDir string, opts Options) (Result, error) {
	run, err := opts.runner()
	if err != nil {
		return Result{}, err
	}
	logger := opts.logger()

	in, err := os.Open(archivePath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", huffman.ErrSourceNotFound, err)
	}
	defer in.Close()
	ar, err := archive.NewReader(in)
	if err != nil {
		return Result{}, err
	}
	if err := util.EnsureDir(dstDir); err != nil {
		return Result{}, fmt.Errorf("%w: %w", huffman.ErrDestinationUnwritable, err)
	}

	// The declared count is untrusted; only indexes actually read are cleaned.
	art := newArtifacts(opts.tempDir(), OpDecompress)
	var extracted int
	defer func() { art.cleanup(extracted) }()

	var res Result
	var jobs []Job
	seen := make(map[string]bool)
	for i := 0; ; i++ {
		entry, payload, err := ar.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, fmt.Errorf("reading %s: %w", archivePath, err)
		}
		if err := archive.ValidateName(entry.Name); err != nil {
			logger.Printf("skipping entry %d: %v", i, err)
			res.Failed = append(res.Failed, FileError{Name: entry.Name, Err: err})
			continue
		}
		if seen[entry.Name] {
			err := fmt.Errorf("%w: %q", ErrDuplicateName, entry.Name)
			logger.Printf("skipping entry %d: %v", i, err)
			res.Failed = append(res.Failed, FileError{Name: entry.Name, Err: err})
			continue
		}
		seen[entry.Name] = true

		job := Job{Index: i, Name: entry.Name, Src: art.path(i), Dst: filepath.Join(dstDir, entry.Name)}
		extracted = i + 1
		if err := extract(job.Src, payload); err != nil {
			return res, fmt.Errorf("reading %s: %w", archivePath, err)
		}
		jobs = append(jobs, job)
	}

	errs := run.run(OpDecompress, jobs)
	for i, job := range jobs {
		if errs[i] != nil {
			logger.Printf("failed to restore %s: %v", job.Name, errs[i])
			res.Failed = append(res.Failed, FileError{Name: job.Name, Err: errs[i]})
			continue
		}
		res.Files = append(res.Files, job.Name)
	}
	return res, nil
}

func extract(path string, payload io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	_, err = io.Copy(f, payload)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}
