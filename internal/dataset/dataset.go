// Package dataset loads the kanji dataset file that owns every row of the
// kanji table.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cocacoran-1/kanji/internal/domain/kanji"
	"github.com/cocacoran-1/kanji/internal/platform/gcp"
)

// DefaultPath is resolved relative to the working directory.
const DefaultPath = "kanji_data.json"

type LoadReport struct {
	Source          string
	Entries         int
	DroppedEntries  int
	DroppedWords    int
	DroppedExamples int
}

// Load reads and validates the dataset at path (local file or gs:// object).
func Load(ctx context.Context, path string) ([]kanji.Entry, LoadReport, error) {
	report := LoadReport{Source: path}
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
		report.Source = path
	}

	rc, err := open(ctx, path)
	if err != nil {
		return nil, report, err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, report, fmt.Errorf("read dataset %s: %w", path, err)
	}

	entries, err := Decode(raw, FormatOf(path))
	if err != nil {
		return nil, report, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	entries, report = validate(entries, report)
	return entries, report, nil
}

func open(ctx context.Context, path string) (io.ReadCloser, error) {
	if gcp.IsObjectURI(path) {
		return gcp.OpenObject(ctx, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	return f, nil
}

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses a JSON array (or YAML sequence) of kanji objects.
func Decode(raw []byte, f Format) ([]kanji.Entry, error) {
	if f == FormatYAML {
		var doc interface{}
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		if _, ok := doc.([]interface{}); !ok {
			return nil, fmt.Errorf("dataset must be a sequence of kanji objects")
		}
		// Re-encode so both formats share the alias-aware JSON decoding.
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}
		raw = converted
	}

	var entries []kanji.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func validate(in []kanji.Entry, report LoadReport) ([]kanji.Entry, LoadReport) {
	out := make([]kanji.Entry, 0, len(in))
	for _, e := range in {
		if e.Character == "" {
			report.DroppedEntries++
			continue
		}

		words := make([]kanji.Word, 0, len(e.Words))
		for _, w := range e.Words {
			w.Word = strings.TrimSpace(w.Word)
			w.Reading = strings.TrimSpace(w.Reading)
			w.Meaning = strings.TrimSpace(w.Meaning)
			if w.Word == "" {
				report.DroppedWords++
				continue
			}
			words = append(words, w)
		}
		e.Words = words

		examples := make([]kanji.ExampleSentence, 0, len(e.ExampleSentences))
		for _, s := range e.ExampleSentences {
			s.Sentence = strings.TrimSpace(s.Sentence)
			s.Reading = strings.TrimSpace(s.Reading)
			s.Translation = strings.TrimSpace(s.Translation)
			if s.Sentence == "" {
				report.DroppedExamples++
				continue
			}
			examples = append(examples, s)
		}
		e.ExampleSentences = examples

		out = append(out, e)
	}
	report.Entries = len(out)
	return out, report
}
