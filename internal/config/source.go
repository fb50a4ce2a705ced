package config

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	SiteFile     = "site.toml"
	ProjectsFile = "projects.toml"
)

// Mode selects where the file source looks for its TOML documents.
type Mode string

const (
	Development Mode = "development"
	Production  Mode = "production"
)

// ParseMode accepts "dev", "development", "prod" and "production".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dev", "development":
		return Development, nil
	case "prod", "production":
		return Production, nil
	}
	return "", fmt.Errorf("unknown mode %q (want development or production)", s)
}

// Source supplies the raw bytes of the configuration documents.
type Source interface {
	ReadFile(name string) ([]byte, error)
	// Location describes where name is read from, for diagnostics.
	Location(name string) string
}

// FileSource reads documents from a directory on disk.
type FileSource struct {
	Dir string
}

// NewFileSource resolves the config directory for mode: the project root in
// development, the static assets directory in production.
func NewFileSource(projectRoot string, mode Mode) FileSource {
	if mode == Production {
		return FileSource{Dir: filepath.Join(projectRoot, "static")}
	}
	return FileSource{Dir: projectRoot}
}

func (s FileSource) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.Dir, name))
}

func (s FileSource) Location(name string) string {
	return filepath.Join(s.Dir, name)
}

//go:embed bundled/*.toml
var bundledFiles embed.FS

// BundledSource serves the copies of site.toml and projects.toml compiled
// into the binary.
type BundledSource struct{}

func (BundledSource) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(bundledFiles, "bundled/"+name)
}

func (BundledSource) Location(name string) string {
	return "bundled:" + name
}

// ErrorKind classifies why a document could not be loaded.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindUnreadable
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnreadable:
		return "unreadable"
	case KindMalformed:
		return "malformed"
	}
	return "unknown"
}

// LoadError is returned when a configuration document cannot be read or parsed.
type LoadError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("config %s (%s): %v", e.Path, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func readSource(src Source, name string) ([]byte, error) {
	data, err := src.ReadFile(name)
	if err == nil {
		return data, nil
	}
	kind := KindUnreadable
	if errors.Is(err, fs.ErrNotExist) {
		kind = KindNotFound
	}
	return nil, &LoadError{Kind: kind, Path: src.Location(name), Err: err}
}
