// Package lsp serves parse diagnostics for XML documents over the
// Language Server Protocol.
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dhamidi/webxml/xml/parser"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "webxml"

type Server struct {
	workspace *Workspace
	watcher   *FileWatcher
	handler   protocol.Handler
	server    *server.Server
	version   string
	opts      []parser.Option
	log       commonlog.Logger
	notify    glsp.NotifyFunc
}

// NewServer creates a language server. opts are passed to the parser for
// every document.
func NewServer(version string, opts ...parser.Option) *Server {
	ls := &Server{
		version: version,
		opts:    opts,
		log:     commonlog.GetLogger("webxml.lsp"),
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.workspace = NewWorkspace(rootDir, ls.opts...)
	ls.log.Info("initialize", "root", rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.notify = ctx.Notify
	ls.watcher = NewFileWatcher(ls.workspace, ls.publishPath)
	ls.watcher.Start()
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
	}
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	f := ls.workspace.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.workspace.SetOpen(path, true)
	ls.publish(ctx.Notify, params.TextDocument.URI, f)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			f := ls.workspace.UpdateFile(path, []byte(textChange.Text))
			ls.publish(ctx.Notify, params.TextDocument.URI, f)
		}
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.workspace.SetOpen(path, false)
	if ls.workspace.ScanFile(path) != nil {
		ls.workspace.RemoveFile(path)
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.workspace.UpdateFile(path, []byte(*params.Text))
	} else {
		ls.workspace.ScanFile(path)
	}
	if f := ls.workspace.GetFile(path); f != nil {
		ls.publish(ctx.Notify, params.TextDocument.URI, f)
	}
	return nil
}

func (ls *Server) publish(notify glsp.NotifyFunc, uri protocol.DocumentUri, f *File) {
	if f.ParseErr != nil {
		ls.log.Debug("invalid document", "path", f.Path, "error", f.ParseErr)
	}
	notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: Diagnostics(f.Content, f.ParseErr),
	})
}

// publishPath reports diagnostics for a document changed on disk.
func (ls *Server) publishPath(path string) {
	if ls.notify == nil {
		return
	}
	uri := pathToURI(path)
	if f := ls.workspace.GetFile(path); f != nil {
		ls.publish(ls.notify, uri, f)
		return
	}
	ls.notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
