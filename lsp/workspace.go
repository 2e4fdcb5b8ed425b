package lsp

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dhamidi/webxml/xml/dom"
	"github.com/dhamidi/webxml/xml/parser"
)

// Workspace holds the parse result of every known document under a root
// directory. It is safe for concurrent use.
type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	opts    []parser.Option
	files   map[string]*File
}

type File struct {
	Path     string
	Content  []byte
	Document *dom.Document
	ParseErr error
	// Open is set while an editor owns the content.
	Open bool
}

func NewWorkspace(rootDir string, opts ...parser.Option) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		opts:    opts,
		files:   make(map[string]*File),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

func isDocument(path string) bool {
	return filepath.Ext(path) == ".xml"
}

func (w *Workspace) ScanAll() error {
	return filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if isDocument(path) {
			w.ScanFile(path)
		}
		return nil
	})
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	w.UpdateFile(path, content)
	return nil
}

// UpdateFile parses content and stores the result under path.
func (w *Workspace) UpdateFile(path string, content []byte) *File {
	opts := append([]parser.Option{parser.WithFile(filepath.Base(path))}, w.opts...)
	doc, err := parser.ParseReader(bytes.NewReader(content), "", opts...)

	w.mu.Lock()
	defer w.mu.Unlock()

	f := &File{
		Path:     path,
		Content:  content,
		Document: doc,
		ParseErr: err,
	}
	if old, ok := w.files[path]; ok {
		f.Open = old.Open
	}
	w.files[path] = f
	return f
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// SetOpen marks path as owned by an editor or releases it.
func (w *Workspace) SetOpen(path string, open bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if f, ok := w.files[path]; ok {
		f.Open = open
	}
}

func (w *Workspace) IsOpen(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	f, ok := w.files[path]
	return ok && f.Open
}

// Paths returns the paths of all known documents in sorted order.
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	paths := make([]string, 0, len(w.files))
	for path := range w.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
