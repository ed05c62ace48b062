package driver

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"fortio.org/safecast"

	"tether/internal/ast"
	"tether/internal/diag"
	"tether/internal/lexer"
	"tether/internal/parser"
	"tether/internal/sema"
	"tether/internal/source"
	"tether/internal/unbound"
)

// CheckOptions настраивают один прогон проверки.
type CheckOptions struct {
	Config         unbound.Config
	MaxDiagnostics int
	Jobs           int

	// Cache — опциональный дисковый кэш результатов; nil отключает его.
	Cache *DiskCache

	// Events получает события конвейера (для UI). Может быть nil.
	Events chan<- Event
}

// CheckResult — итог проверки одного файла.
type CheckResult struct {
	Path      string
	FileID    source.FileID
	Bag       *diag.Bag
	FromCache bool
}

// listTSFiles возвращает отсортированный список *.ts/*.tsx файлов,
// пропуская node_modules и скрытые каталоги.
func listTSFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if name == "node_modules" || (strings.HasPrefix(name, ".") && path != dir) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".ts") || strings.HasSuffix(path, ".tsx") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Детерминированный порядок
	sort.Strings(files)
	return files, nil
}

// ListFiles возвращает список файлов, которые CheckDir возьмёт в работу.
// Нужен UI, чтобы нарисовать строки прогресса до старта проверки.
func ListFiles(dir string) ([]string, error) {
	return listTSFiles(dir)
}

// CheckSource прогоняет один уже загруженный файл через весь конвейер:
// лексер, парсер, резолвер, анализ. Возвращает bag с диагностиками файла.
func CheckSource(fileSet *source.FileSet, fileID source.FileID, interner *source.Interner, opts CheckOptions) *diag.Bag {
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := &diag.BagReporter{Bag: bag}

	file := fileSet.Get(fileID)
	if file == nil {
		return bag
	}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, interner)

	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		maxErrors = 0
	}
	result := parser.ParseFile(fileSet, lx, builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	})

	// На синтаксически битом файле анализ не запускаем: резолвер увидел бы
	// обрубленное дерево и дал бы шумные полудиагнозы.
	if bag.HasErrors() {
		return bag
	}

	info := sema.Resolve(builder, result.File)
	unbound.Analyze(builder, result.File, info, opts.Config, reporter)
	return bag
}
