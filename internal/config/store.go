package config

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	xlog "folio/internal/log"
	"folio/internal/metrics"
)

// lazy holds one load outcome. A fresh lazy is swapped in on Reload.
type lazy[T any] struct {
	once  sync.Once
	value T
}

// Store caches the site document and the projects list. Each is loaded once
// on first access; the outcome, fallback included, is kept until Reload.
type Store struct {
	source Source
	now    func() time.Time
	logger zerolog.Logger

	doc      atomic.Pointer[lazy[Document]]
	projects atomic.Pointer[lazy[[]Project]]
}

// NewStore creates a store reading from src.
func NewStore(src Source) *Store {
	s := &Store{
		source: src,
		now:    time.Now,
		logger: xlog.WithComponent("config"),
	}
	s.Reload()
	return s
}

// Initialize loads both documents eagerly.
func (s *Store) Initialize() {
	s.Config()
	s.Projects()
}

// Reload drops the cached documents; the next access reads the source again.
func (s *Store) Reload() {
	s.doc.Store(&lazy[Document]{})
	s.projects.Store(&lazy[[]Project]{})
}

// Config returns the site document, or Defaults if site.toml could not be loaded.
func (s *Store) Config() Document {
	l := s.doc.Load()
	l.once.Do(func() {
		doc, err := LoadDocument(s.source, s.now())
		if err != nil {
			s.logFailure(err, "using default site configuration")
			metrics.RecordConfigFallback(SiteFile)
			doc = Defaults(s.now())
		}
		l.value = doc
	})
	return l.value
}

// Projects returns the projects list, or an empty list if projects.toml
// could not be loaded.
func (s *Store) Projects() []Project {
	l := s.projects.Load()
	l.once.Do(func() {
		projects, err := LoadProjects(s.source)
		if err != nil {
			s.logFailure(err, "using empty projects list")
			metrics.RecordConfigFallback(ProjectsFile)
			projects = []Project{}
		}
		l.value = projects
	})
	return l.value
}

func (s *Store) Site() Site { return s.Config().Site }
func (s *Store) Owner() Owner { return s.Config().Owner }
func (s *Store) Social() Social { return s.Config().Social }
func (s *Store) Skills() Skills { return s.Config().Skills }
func (s *Store) Theme() Theme { return s.Config().Theme }
func (s *Store) Navigation() Navigation { return s.Config().Navigation }
func (s *Store) Features() Features { return s.Config().Features }
func (s *Store) SEO() SEO { return s.Config().SEO }
func (s *Store) Contact() Contact { return s.Config().Contact }

func (s *Store) logFailure(err error, msg string) {
	ev := s.logger.Warn().Err(err)
	var lerr *LoadError
	if errors.As(err, &lerr) {
		ev = ev.Str("path", lerr.Path).Stringer("kind", lerr.Kind)
		var derr *toml.DecodeError
		if errors.As(lerr.Err, &derr) {
			row, col := derr.Position()
			ev = ev.Int("line", row).Int("column", col)
		}
	}
	ev.Msg(msg)
}

// LoadDocument reads and parses site.toml from src. Sections absent from the
// file keep their default values.
func LoadDocument(src Source, now time.Time) (Document, error) {
	data, err := readSource(src, SiteFile)
	if err != nil {
		return Document{}, err
	}
	var f fileDocument
	if err := toml.Unmarshal(data, &f); err != nil {
		return Document{}, &LoadError{Kind: KindMalformed, Path: src.Location(SiteFile), Err: err}
	}
	return f.resolve(Defaults(now)), nil
}

// LoadProjects reads and parses projects.toml from src. A file without a
// projects array yields an empty list.
func LoadProjects(src Source) ([]Project, error) {
	data, err := readSource(src, ProjectsFile)
	if err != nil {
		return nil, err
	}
	var f projectsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, &LoadError{Kind: KindMalformed, Path: src.Location(ProjectsFile), Err: err}
	}
	if f.Projects == nil {
		return []Project{}, nil
	}
	return f.Projects, nil
}
