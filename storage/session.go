package storage

import (
	"fmt"
	"log/slog"

	"github.com/arthur-debert/tamodel/model"
)

// Session is a project file open in a workspace.
type Session struct {
	storage Storage
	ws      *model.Workspace
	project *model.Project
	locks   *LockManager
	log     *slog.Logger
}

// Open loads the project at path into ws.
func Open(path string, ws *model.Workspace, opts ...Option) (*Session, error) {
	st := NewJSONStorage(path, opts...)
	raw, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	p, err := ws.LoadProject(raw)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	s := newSession(st, ws, p, buildOptions(opts).log)
	s.log.Debug("session opened", "path", path, "project", p.Name())
	return s, nil
}

// Create starts a new empty project in ws and writes it to path.
func Create(path string, ws *model.Workspace, opts ...Option) (*Session, error) {
	p, err := ws.NewProject()
	if err != nil {
		return nil, err
	}
	s := newSession(NewJSONStorage(path, opts...), ws, p, buildOptions(opts).log)
	if err := s.Save(); err != nil {
		_ = ws.CloseProject(p)
		return nil, err
	}
	s.log.Debug("session created", "path", path, "project", p.Name())
	return s, nil
}

func newSession(st Storage, ws *model.Workspace, p *model.Project, log *slog.Logger) *Session {
	return &Session{
		storage: st,
		ws:      ws,
		project: p,
		locks:   NewLockManager(),
		log:     log.With("component", "storage"),
	}
}

// Project returns the open project. Prefer Read and Write when the session
// is shared.
func (s *Session) Project() *model.Project { return s.project }

// Read runs fn with shared access to the project.
func (s *Session) Read(fn func(*model.Project) error) error {
	return s.locks.Execute(ReadOperation, func() error {
		return fn(s.project)
	})
}

// Write runs fn with exclusive access to the project and saves the result
// if fn succeeds.
func (s *Session) Write(fn func(*model.Project) error) error {
	return s.locks.Execute(WriteOperation, func() error {
		if err := fn(s.project); err != nil {
			s.log.Debug("write discarded", "project", s.project.Name(), "error", err)
			return err
		}
		return s.storage.Save(s.project.ToRaw())
	})
}

// Save writes the project back to its file.
func (s *Session) Save() error {
	return s.locks.Execute(ReadOperation, func() error {
		return s.storage.Save(s.project.ToRaw())
	})
}

// Close drops the project from the workspace and releases the file.
func (s *Session) Close() error {
	if err := s.ws.CloseProject(s.project); err != nil {
		return err
	}
	s.log.Debug("session closed", "project", s.project.Name())
	return s.storage.Close()
}
