package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"tether/internal/diag"
	"tether/internal/source"
)

// CheckDir проверяет все *.ts/*.tsx файлы в каталоге параллельно.
// Файлы независимы: общий только потокобезопасный interner и кэш.
func CheckDir(ctx context.Context, dir string, opts CheckOptions) (*source.FileSet, []CheckResult, error) {
	files, err := listTSFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	interner := source.NewInterner()

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	results := make([]CheckResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
				})
				results[i] = CheckResult{Path: path, Bag: bag}
				emit(opts.Events, Event{File: path, Stage: StageLoad, Status: StatusError})
				return nil
			}

			fileID := fileIDs[path]
			file := fileSet.Get(fileID)

			if opts.Cache != nil {
				key := cacheKey(file.Content, opts.Config)
				if bag, ok := opts.Cache.Load(key, fileID, opts.MaxDiagnostics); ok {
					results[i] = CheckResult{Path: path, FileID: fileID, Bag: bag, FromCache: true}
					emit(opts.Events, Event{File: path, Stage: StageAnalyze, Status: StatusCached})
					return nil
				}
			}

			emit(opts.Events, Event{File: path, Stage: StageParse, Status: StatusWorking})
			bag := CheckSource(fileSet, fileID, interner, opts)
			emit(opts.Events, Event{File: path, Stage: StageAnalyze, Status: StatusDone})

			if opts.Cache != nil {
				key := cacheKey(file.Content, opts.Config)
				// Промах записи в кэш не роняет прогон.
				_ = opts.Cache.Store(key, bag)
			}

			results[i] = CheckResult{Path: path, FileID: fileID, Bag: bag}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
