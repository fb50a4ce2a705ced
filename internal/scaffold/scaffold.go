// internal/scaffold/scaffold.go
package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"

	"folio/internal/config"
	"folio/internal/util"
)

// BlogDir is where posts live, relative to the project root.
const BlogDir = "content/blog"

const archetypePath = "archetypes/post.md"

// CreateNewSite lays out a project in dir: both config documents (seeded from
// the bundled copies), a sample post, the post archetype and an empty static
// directory. Existing files are left alone.
func CreateNewSite(out io.Writer, dir string) error {
	fmt.Fprintln(out, "Scaffolding new site in:", dir)
	for _, sub := range []string{BlogDir, "static", "templates", "archetypes"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", sub, err)
		}
	}

	files := make(map[string][]byte)
	files[archetypePath] = []byte(defaultArchetype)
	files[filepath.Join(BlogDir, "hello-world.md")] = []byte(helloWorldPost)
	for _, name := range []string{config.SiteFile, config.ProjectsFile} {
		data, err := config.BundledSource{}.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read bundled %s: %w", name, err)
		}
		files[name] = data
	}
	for path, data := range files {
		if err := writeNew(filepath.Join(dir, path), data); err != nil && !errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("failed to write file %s: %w", path, err)
		}
	}

	fmt.Fprintln(out, "Site scaffolded. You can now:")
	fmt.Fprintln(out, "  cd", dir)
	fmt.Fprintln(out, "  folio new post \"My first post\"")
	fmt.Fprintln(out, "  folio serve")
	return nil
}

// archetypeFuncs are available to archetypes. yaml quotes a value as a YAML
// scalar so any title survives the round trip through front matter.
var archetypeFuncs = template.FuncMap{
	"yaml": func(s string) (string, error) {
		b, err := yaml.Marshal(s)
		return strings.TrimSpace(string(b)), err
	},
}

// CreateNewPost writes content/blog/<slug>.md under root from the project's
// archetype, or the built-in one when the project has none. The author is
// taken from the site config read through src. It refuses to overwrite an
// existing post and returns the path it wrote.
func CreateNewPost(src config.Source, root, title string, now time.Time) (string, error) {
	slug := util.Slugify(title)
	if slug == "" {
		return "", fmt.Errorf("title %q does not produce a usable slug", title)
	}

	archetype, err := os.ReadFile(filepath.Join(root, archetypePath))
	if errors.Is(err, fs.ErrNotExist) {
		archetype = []byte(defaultArchetype)
	} else if err != nil {
		return "", fmt.Errorf("could not read archetype file: %w", err)
	}

	tmpl, err := template.New("archetype").Funcs(archetypeFuncs).Parse(string(archetype))
	if err != nil {
		return "", fmt.Errorf("failed to parse archetype file %s: %w", archetypePath, err)
	}

	data := struct {
		Title  string
		Date   string
		Author string
	}{
		Title:  title,
		Date:   now.Format("2006-01-02"),
		Author: config.NewStore(src).Owner().Name,
	}

	var output bytes.Buffer
	if err := tmpl.Execute(&output, data); err != nil {
		return "", fmt.Errorf("failed to execute archetype template: %w", err)
	}

	path := filepath.Join(root, BlogDir, slug+".md")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := writeNew(path, output.Bytes()); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("post %s already exists", path)
		}
		return "", err
	}
	return path, nil
}

func writeNew(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

const defaultArchetype = `---
title: {{ yaml .Title }}
date: {{ .Date }}
author: {{ yaml .Author }}
description: ""
tags: []
draft: true
---

Write something meaningful here.
`

const helloWorldPost = `---
title: "Hello, world"
date: 2024-01-01
excerpt: "The first post on this site."
tags: [meta]
---

Welcome! Posts live in ` + "`content/blog`" + ` as Markdown files with YAML
(` + "`---`" + `) or TOML (` + "`+++`" + `) front matter.
`
