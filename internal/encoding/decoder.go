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

package encoding

import (
	"errors"
	"io"
	"strings"

	"github.com/drone/envsubst/v2"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/dadrus/pathrouter/internal/pathrouter"
	"github.com/dadrus/pathrouter/internal/x/errorchain"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeYAML = "application/yaml"
)

// Decoder decodes YAML or JSON documents (JSON being a subset of YAML) into structs.
type Decoder struct {
	decoderOpts
}

func NewDecoder(opts ...DecoderOption) *Decoder {
	decoder := &Decoder{decoderOpts: defaultDecoderOpts()}

	for _, opt := range opts {
		opt(&decoder.decoderOpts)
	}

	return decoder
}

// Decode reads a document from reader and decodes it into out. An empty document results
// in io.EOF.
func (d *Decoder) Decode(out any, reader io.Reader) error {
	var rawObject map[string]any

	if d.contentType != ContentTypeJSON && d.contentType != ContentTypeYAML {
		return errorchain.NewWithMessagef(pathrouter.ErrInternal,
			"unsupported content type: %s", d.contentType)
	}

	if d.substituteEnvVars {
		raw, err := io.ReadAll(reader)
		if err != nil {
			return errorchain.NewWithMessage(pathrouter.ErrInternal,
				"reading object failed").CausedBy(err)
		}

		content, err := envsubst.EvalEnv(string(raw))
		if err != nil {
			return errorchain.NewWithMessage(pathrouter.ErrConfiguration,
				"substitution of environment variables failed").CausedBy(err)
		}

		reader = strings.NewReader(content)
	}

	dec := yaml.NewDecoder(reader)
	if err := dec.Decode(&rawObject); err != nil {
		if errors.Is(err, io.EOF) {
			return err
		}

		return errorchain.NewWithMessage(pathrouter.ErrConfiguration,
			"parsing of object failed").CausedBy(err)
	}

	return d.DecodeMap(out, rawObject)
}

func (d *Decoder) DecodeMap(out any, in map[string]any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: d.errorOnUnused,
		TagName:     d.tagName,
		DecodeHook:  mapstructure.ComposeDecodeHookFunc(d.decodeHooks...),
	})
	if err != nil {
		return errorchain.NewWithMessage(pathrouter.ErrInternal,
			"failed creating object decoder").CausedBy(err)
	}

	if err = dec.Decode(in); err != nil {
		return errorchain.NewWithMessage(pathrouter.ErrConfiguration,
			"decoding of object failed").CausedBy(err)
	}

	if err = d.validator.ValidateStruct(out); err != nil {
		return errorchain.NewWithMessage(pathrouter.ErrConfiguration,
			"object validation failed").CausedBy(err)
	}

	return nil
}
