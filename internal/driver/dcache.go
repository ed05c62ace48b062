package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"tether/internal/diag"
	"tether/internal/source"
	"tether/internal/unbound"
)

// Схема растёт при каждом изменении формата DiskPayload.
const diskCacheSchemaVersion uint16 = 1

// Digest — ключ кэша: SHA-256 от содержимого файла и конфигурации.
type Digest [32]byte

// cacheKey сворачивает всё, от чего зависят диагностики файла.
func cacheKey(content []byte, cfg unbound.Config) Digest {
	h := sha256.New()
	_, _ = h.Write(content)
	var cfgByte byte
	if cfg.IgnoreStatic {
		cfgByte = 1
	}
	_, _ = h.Write([]byte{cfgByte, byte(diskCacheSchemaVersion), byte(diskCacheSchemaVersion >> 8)})
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// DiskCache хранит диагностики уже проверенных файлов на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload — сериализованные диагностики одного файла. Спаны хранятся
// как смещения: FileID перепривязывается при чтении.
type DiskPayload struct {
	Schema uint16
	Diags  []CachedDiag
}

type CachedDiag struct {
	Code     uint16
	Severity uint8
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote
}

type CachedNote struct {
	Message string
	Start   uint32
	End     uint32
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог "files" — для удобства очистки.
	return filepath.Join(c.dir, "files", hexKey+".mp")
}

// Store serializes the bag's diagnostics under the key. Атомарная запись
// через временный файл и rename.
func (c *DiskCache) Store(key Digest, bag *diag.Bag) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := DiskPayload{Schema: diskCacheSchemaVersion}
	for _, d := range bag.Items() {
		cd := CachedDiag{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Message: n.Msg, Start: n.Span.Start, End: n.Span.End})
		}
		payload.Diags = append(payload.Diags, cd)
	}

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(f.Name()) }()

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Load reads cached diagnostics and rebinds their spans to fileID.
// false означает промах: нет записи, битый формат или другая схема.
func (c *DiskCache) Load(key Digest, fileID source.FileID, maxDiagnostics int) (*diag.Bag, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			// повреждённый кэш — это промах, не ошибка
			_ = err
		}
		return nil, false
	}
	defer func() { _ = f.Close() }()

	var payload DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false
	}

	bag := diag.NewBag(maxDiagnostics)
	for _, cd := range payload.Diags {
		d := diag.Diagnostic{
			Code:     diag.Code(cd.Code),
			Severity: diag.Severity(cd.Severity),
			Message:  cd.Message,
			Primary:  source.Span{File: fileID, Start: cd.Start, End: cd.End},
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{
				Msg:  n.Message,
				Span: source.Span{File: fileID, Start: n.Start, End: n.End},
			})
		}
		bag.Add(d)
	}
	return bag, true
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
