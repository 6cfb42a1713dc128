// Copyright 2025 Dimitrij Drus <dadrus@gmx.de>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package routeset

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/dadrus/pathrouter/internal/config"
	"github.com/dadrus/pathrouter/internal/pathrouter"
	"github.com/dadrus/pathrouter/internal/x/errorchain"
)

const providerType = "file_system"

// FileProvider loads route sets from a file or from all files of a directory into a registry.
// If watching is enabled, changes to these files are applied while the provider is running.
type FileProvider[T any] struct {
	src     string
	w       *fsnotify.Watcher
	p       *Parser
	factory CallbackFactory[T]
	r       *Registry[T]
	l       zerolog.Logger
}

func NewFileProvider[T any](
	conf config.RoutesConfig,
	parser *Parser,
	factory CallbackFactory[T],
	registry *Registry[T],
	logger zerolog.Logger,
) (*FileProvider[T], error) {
	if len(conf.Source) == 0 {
		return nil, errorchain.NewWithMessage(pathrouter.ErrConfiguration, "no routes src configured")
	}

	absPath, err := filepath.Abs(conf.Source)
	if err != nil {
		return nil, errorchain.NewWithMessage(pathrouter.ErrInternal,
			"failed to get the absolute path for the configured src").CausedBy(err)
	}

	if _, err = os.Stat(absPath); err != nil {
		return nil, errorchain.NewWithMessage(pathrouter.ErrConfiguration,
			"failed to get information about configured src from the file system").CausedBy(err)
	}

	var watcher *fsnotify.Watcher
	if conf.Watch {
		watcher, err = fsnotify.NewWatcher()
		if err != nil {
			return nil, errorchain.NewWithMessage(pathrouter.ErrInternal,
				"failed to instantiate file watcher").CausedBy(err)
		}
	}

	return &FileProvider[T]{
		src:     absPath,
		w:       watcher,
		p:       parser,
		factory: factory,
		r:       registry,
		l:       logger.With().Str("_provider_type", providerType).Logger(),
	}, nil
}

// Start loads all route sets. It fails if one of them cannot be loaded.
func (p *FileProvider[T]) Start(_ context.Context) error {
	p.l.Info().Msg("Starting route set provider")

	if err := p.loadInitialRouteSets(); err != nil {
		p.l.Error().Err(err).Msg("Failed loading initial route sets")

		return err
	}

	if p.w == nil {
		p.l.Warn().Msg("Watching is not configured. Updates to route sets will have no effects.")

		return nil
	}

	if err := p.w.Add(p.src); err != nil {
		p.l.Error().Err(err).Msg("Failed to start watching route sets")

		return err
	}

	go p.watchFiles()

	return nil
}

func (p *FileProvider[T]) Stop(_ context.Context) error {
	p.l.Info().Msg("Tearing down route set provider")

	if p.w != nil {
		return p.w.Close()
	}

	return nil
}

func (p *FileProvider[T]) watchFiles() {
	p.l.Debug().Msg("Watching route set files for changes")

	for {
		select {
		case evt, ok := <-p.w.Events:
			if !ok {
				p.l.Debug().Msg("Watcher events channel closed")

				return
			}

			p.l.Debug().
				Str("_event", evt.String()).
				Str("_src", evt.Name).
				Msg("Route set update event received")

			switch {
			case evt.Has(fsnotify.Create), evt.Has(fsnotify.Write):
				if err := p.load(evt.Name); err != nil {
					p.l.Warn().Err(err).Str("_file", evt.Name).Msg("Route set update ignored")
				}
			case evt.Has(fsnotify.Remove), evt.Has(fsnotify.Rename):
				p.r.Remove(evt.Name)
			}
		case err, ok := <-p.w.Errors:
			if !ok {
				p.l.Debug().Msg("Watcher error channel closed")

				return
			}

			p.l.Warn().Err(err).Msg("Watcher error received")
		}
	}
}

func (p *FileProvider[T]) loadInitialRouteSets() error {
	p.l.Info().Msg("Loading initial route sets")

	sources, err := routeSetFiles(p.src, p.l)
	if err != nil {
		return err
	}

	for _, src := range sources {
		if err = p.load(src); err != nil {
			return err
		}
	}

	return nil
}

func (p *FileProvider[T]) load(file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return errorchain.NewWithMessagef(pathrouter.ErrInternal, "failed reading %s", file).CausedBy(err)
	}

	if len(data) == 0 {
		p.l.Warn().Str("_file", file).Msg("File is empty")

		return nil
	}

	rs, err := p.p.Parse(ContentType(file), bytes.NewReader(data))
	if err != nil {
		return errorchain.NewWithMessagef(pathrouter.ErrConfiguration,
			"failed to parse route set from %s", file).CausedBy(err)
	}

	routes, err := ToRoutes(rs, p.factory)
	if err != nil {
		return err
	}

	return p.r.Replace(file, routes)
}

// routeSetFiles returns src if it is a file, or the files directly contained in src if it
// is a directory.
func routeSetFiles(src string, logger zerolog.Logger) ([]string, error) {
	fInfo, err := os.Stat(src)
	if err != nil {
		return nil, err
	}

	if !fInfo.IsDir() {
		return []string{src}, nil
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, err
	}

	var files []string

	for _, entry := range entries {
		path := filepath.Join(src, entry.Name())

		if entry.IsDir() {
			logger.Warn().Str("_path", path).Msg("Ignoring directory")

			continue
		}

		files = append(files, path)
	}

	return files, nil
}
