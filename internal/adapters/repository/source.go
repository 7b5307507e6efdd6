package repository

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/okian/prospectboard/internal/domain/model"
	"gopkg.in/yaml.v3"
)

//go:embed data/prospects.yaml
var embeddedProspects []byte

// Source produces raw roster records. Records are validated, deduplicated
// and sorted by the cache, not by the source.
type Source interface {
	Name() string
	Load(ctx context.Context) (model.Roster, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (model.Roster, error)

// Name implements Source.
func (f SourceFunc) Name() string { return "func" }

// Load implements Source.
func (f SourceFunc) Load(ctx context.Context) (model.Roster, error) { return f(ctx) }

type yamlSource struct {
	name string
	read func(ctx context.Context) ([]byte, error)
}

func (s *yamlSource) Name() string { return s.name }

func (s *yamlSource) Load(ctx context.Context) (model.Roster, error) {
	data, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return DecodeRoster(data)
}

// EmbeddedSource serves the canonical roster compiled into the binary.
func EmbeddedSource() Source {
	return NewYAMLSource("embedded", embeddedProspects)
}

// NewYAMLSource serves a roster document held in memory.
func NewYAMLSource(name string, data []byte) Source {
	return &yamlSource{
		name: name,
		read: func(context.Context) ([]byte, error) { return data, nil },
	}
}

// NewFileSource reads a roster document from path on every load.
func NewFileSource(path string) Source {
	return &yamlSource{
		name: "file:" + path,
		read: func(ctx context.Context) ([]byte, error) {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
			}
			data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
			}
			return data, nil
		},
	}
}

// rosterDocument is the on-disk layout of a roster file.
type rosterDocument struct {
	Prospects []model.Prospect `yaml:"prospects"`
}

// DecodeRoster parses a roster document. Unknown fields are rejected so a
// stray stat outside its hitting/pitching block does not vanish silently.
func DecodeRoster(data []byte) (model.Roster, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc rosterDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrDecode)
		}
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := checkExplicitRanks(data, doc.Prospects); err != nil {
		return nil, err
	}
	return model.Roster(doc.Prospects), nil
}

// rankDocument sees whether each record wrote a rank at all, which the
// zero value of model.Prospect.Rank cannot tell apart from rank: 0.
type rankDocument struct {
	Prospects []struct {
		Rank *int `yaml:"rank"`
	} `yaml:"prospects"`
}

// checkExplicitRanks rejects a rank written as zero. A missing rank means
// unranked; a present one must be positive.
func checkExplicitRanks(data []byte, prospects []model.Prospect) error {
	var doc rankDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	for i, r := range doc.Prospects {
		if r.Rank == nil || *r.Rank != 0 {
			continue
		}
		name := ""
		if i < len(prospects) {
			name = prospects[i].Name
		}
		return &model.ValidationError{Index: i, Name: name, Field: "rank", Reason: "must be positive when present"}
	}
	return nil
}
