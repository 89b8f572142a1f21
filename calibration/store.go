// SPDX-License-Identifier: MIT

package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Channel holds the records of one phase shifter. Either record may be
// absent.
type Channel struct {
	Resistance *Resistance `json:"resistance,omitempty" yaml:"resistance,omitempty" mapstructure:"resistance"`
	Phase      *Phase      `json:"phase,omitempty" yaml:"phase,omitempty" mapstructure:"phase"`
}

// Clone returns a deep copy of c.
func (c Channel) Clone() Channel {
	out := Channel{}
	if c.Resistance != nil {
		r := *c.Resistance
		out.Resistance = &r
	}
	if c.Phase != nil {
		p := *c.Phase
		out.Phase = &p
	}

	return out
}

// Complete reports whether both records are present.
func (c Channel) Complete() bool { return c.Resistance != nil && c.Phase != nil }

// Validate checks the records that are present.
func (c Channel) Validate() error {
	if c.Resistance != nil {
		if err := c.Resistance.Validate(); err != nil {
			return err
		}
	}
	if c.Phase != nil {
		if err := c.Phase.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Store maps channel ids to calibration records. The zero Store is empty
// and usable. Stores are values: Set returns a modified copy.
type Store struct {
	channels map[string]Channel
}

// NewStore copies channels into a Store.
func NewStore(channels map[string]Channel) Store {
	s := Store{channels: make(map[string]Channel, len(channels))}
	for id, ch := range channels {
		s.channels[id] = ch.Clone()
	}

	return s
}

// Len returns the number of channels.
func (s Store) Len() int { return len(s.channels) }

// IDs returns the channel ids, sorted.
func (s Store) IDs() []string {
	out := make([]string, 0, len(s.channels))
	for id := range s.channels {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}

// Lookup returns a deep copy of channel id.
//
// Errors: ErrNoCalibration when id is absent.
func (s Store) Lookup(id string) (Channel, error) {
	ch, ok := s.channels[id]
	if !ok {
		return Channel{}, fmt.Errorf("%q: %w", id, ErrNoCalibration)
	}

	return ch.Clone(), nil
}

// Set returns a copy of s with channel id replaced by ch.
func (s Store) Set(id string, ch Channel) Store {
	out := s.Snapshot()
	out.channels[id] = ch.Clone()

	return out
}

// Snapshot returns a deep copy of s.
func (s Store) Snapshot() Store { return NewStore(s.channels) }

// storeFile is the on-disk layout.
type storeFile struct {
	Channels map[string]Channel `json:"channels" yaml:"channels" mapstructure:"channels"`
}

// LoadStore reads a store from a YAML or JSON file, chosen by extension
// (YAML unless ".json").
func LoadStore(path string) (Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Store{}, fmt.Errorf("failed to read calibration store: %w", err)
	}

	return DecodeStore(data, filepath.Ext(path))
}

// DecodeStore parses store data. Documents are read into generic maps and
// decoded with mapstructure, so both formats share one set of field names
// and numeric strings are accepted.
//
// Errors: ErrInvalidRecord for unknown fields, bad values or records that
// fail Validate.
func DecodeStore(data []byte, ext string) (Store, error) {
	var raw map[string]any
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &raw); err != nil {
			return Store{}, fmt.Errorf("failed to parse calibration json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Store{}, fmt.Errorf("failed to parse calibration yaml: %w", err)
		}
	}

	var f storeFile
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.TextUnmarshallerHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &f,
	})
	if err != nil {
		return Store{}, err
	}
	if err = dec.Decode(raw); err != nil {
		return Store{}, fmt.Errorf("DecodeStore: %v: %w", err, ErrInvalidRecord)
	}

	for id, ch := range f.Channels {
		if err = ch.Validate(); err != nil {
			return Store{}, fmt.Errorf("DecodeStore: channel %q: %w", id, err)
		}
	}

	return Store{channels: f.Channels}, nil
}

// Encode renders s as YAML, or JSON when ext is ".json".
func (s Store) Encode(ext string) ([]byte, error) {
	f := storeFile{Channels: s.channels}
	if f.Channels == nil {
		f.Channels = map[string]Channel{}
	}
	if strings.EqualFold(ext, ".json") {
		return json.MarshalIndent(f, "", "  ")
	}

	return yaml.Marshal(f)
}
