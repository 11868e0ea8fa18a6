// Package workspace keeps the decoded notes and diagnostics of a tree of
// ABC files in memory, for the language server and the check command.
package workspace

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/remeh/sizedwaitgroup"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/abcnote/abc"
	"github.com/dhamidi/abcnote/freq"
)

// Ext is the extension of files the workspace picks up.
const Ext = ".abc"

type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	table   *freq.Table
	log     commonlog.Logger
	files   map[string]*FileInfo
}

// FileInfo is one decoded tune file.
type FileInfo struct {
	Path        string
	Content     []byte
	Notes       []abc.Note
	Diagnostics []abc.Diagnostic
	// ReadErr is set when the notation stream failed before its end.
	ReadErr error
}

// Duration is the total playing time of the file.
func (f *FileInfo) Duration() time.Duration {
	var d time.Duration
	for _, n := range f.Notes {
		d += n.Duration()
	}
	return d
}

// OutOfRange counts notes that could not be played.
func (f *FileInfo) OutOfRange() int {
	count := 0
	for _, d := range f.Diagnostics {
		if d.Kind == abc.DiagOutOfRange {
			count++
		}
	}
	return count
}

type Option func(*Workspace)

// WithTable selects the frequency table notes are decoded with.
func WithTable(t *freq.Table) Option {
	return func(w *Workspace) {
		if t != nil {
			w.table = t
		}
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(w *Workspace) {
		if log != nil {
			w.log = log
		}
	}
}

func New(rootDir string, opts ...Option) *Workspace {
	w := &Workspace{
		rootDir: rootDir,
		table:   freq.Default,
		log:     commonlog.GetLogger("abcnote.workspace"),
		files:   make(map[string]*FileInfo),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// Table returns the frequency table the workspace decodes with.
func (w *Workspace) Table() *freq.Table {
	return w.table
}

// ScanAll decodes every .abc file below the root directory, one parser per
// file on up to NumCPU goroutines. Hidden directories are skipped;
// unreadable files are logged and skipped.
func (w *Workspace) ScanAll() error {
	var paths []string
	err := filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			w.log.Warningf("scan %s: %s", path, err)
			return nil
		}
		if info.IsDir() {
			if path != w.rootDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == Ext {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	wg := sizedwaitgroup.New(runtime.NumCPU())
	for _, path := range paths {
		wg.Add()
		go func(path string) {
			defer wg.Done()
			if err := w.ScanFile(path); err != nil {
				w.log.Warningf("scan %s: %s", path, err)
			}
		}(path)
	}
	wg.Wait()
	return nil
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return w.UpdateFile(path, content)
}

// ScanZip decodes every .abc entry of a zip archive, as tune collections
// are usually distributed. Entries are stored under "<archive>/<entry>".
func (w *Workspace) ScanZip(archive string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || path.Ext(f.Name) != Ext {
			continue
		}
		content, err := readZipEntry(f)
		if err != nil {
			return fmt.Errorf("read %s from %s: %w", f.Name, archive, err)
		}
		if err := w.UpdateFile(archive+"/"+f.Name, content); err != nil {
			return err
		}
	}
	return nil
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// UpdateFile decodes content as the current text of path, replacing what
// the workspace knew about it.
func (w *Workspace) UpdateFile(path string, content []byte) error {
	info := w.decode(path, content)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = info
	return nil
}

func (w *Workspace) decode(path string, content []byte) *FileInfo {
	p := abc.New(bytes.NewReader(content),
		abc.WithFile(path),
		abc.WithTable(w.table),
		abc.WithLogger(w.log),
	)

	info := &FileInfo{Path: path, Content: content}
	for {
		n, err := p.Next()
		if err == io.EOF {
			break
		}
		var derr *abc.DecodeError
		if errors.As(err, &derr) {
			continue
		}
		if err != nil {
			info.ReadErr = err
			break
		}
		info.Notes = append(info.Notes, n)
	}
	info.Diagnostics = p.Diagnostics()

	w.log.Debugf("%s: %d notes, %d diagnostics", path, len(info.Notes), len(info.Diagnostics))
	return info
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *FileInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Files returns every known file ordered by path.
func (w *Workspace) Files() []*FileInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()

	files := make([]*FileInfo, 0, len(w.files))
	for _, f := range w.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files
}

// NoteAt returns the note whose notation covers the 1-based line and
// column.
func (w *Workspace) NoteAt(path string, line, column int) (abc.Note, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	f := w.files[path]
	if f == nil {
		return abc.Note{}, false
	}

	// Notes are in stream order, so positions are ascending.
	i := sort.Search(len(f.Notes), func(i int) bool {
		pos := f.Notes[i].Pos
		return pos.Line > line || (pos.Line == line && pos.Column > column)
	})
	if i == 0 {
		return abc.Note{}, false
	}
	n := f.Notes[i-1]
	if n.Pos.Line != line || column >= n.Pos.Column+len(n.Text) {
		return abc.Note{}, false
	}
	return n, true
}

// Summary aggregates what is known about a set of files.
type Summary struct {
	Files       int
	Notes       int
	Rests       int
	Bytes       uint64
	Duration    time.Duration
	Diagnostics int
	OutOfRange  int
}

func (w *Workspace) Summary() Summary {
	var s Summary
	for _, f := range w.Files() {
		s.Files++
		s.Bytes += uint64(len(f.Content))
		s.Duration += f.Duration()
		s.Diagnostics += len(f.Diagnostics)
		s.OutOfRange += f.OutOfRange()
		for _, n := range f.Notes {
			if n.Kind == abc.Rest {
				s.Rests++
			} else {
				s.Notes++
			}
		}
	}
	return s
}
