// Package wordlist loads the suspicious-word dictionary from a YAML file
// and seeds it into the database. The file is optional: auditors maintain
// one per organization, and a missing file simply means an empty seed.
package wordlist

import (
	"fmt"
	"os"
	"strings"

	"avkuzmin/finaudit/internal/store"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// wordsConfig is the expected file shape: "words: [...]".
type wordsConfig struct {
	Words []string `yaml:"words"`
}

// Load reads suspicious words from a YAML file. A missing file is not an
// error and yields an empty list. Blank entries and duplicates are
// dropped, order is preserved.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("Suspicious words file not found: %s", path)
			return []string{}, nil
		}
		return nil, fmt.Errorf("read words file: %w", err)
	}

	var cfg wordsConfig
	if err := yaml.Unmarshal(data, &cfg); err == nil && len(cfg.Words) > 0 {
		return normalize(cfg.Words), nil
	}

	// Fallback: a bare YAML list of strings.
	var words []string
	if err := yaml.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("parse words file: %w", err)
	}
	return normalize(words), nil
}

func normalize(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		key := strings.ToLower(w)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Seed inserts the words into the database, skipping ones already there,
// and returns how many were loaded.
func Seed(s *store.Store, words []string) (int, error) {
	for _, w := range words {
		if _, err := s.AddSuspiciousWord(w); err != nil {
			return 0, fmt.Errorf("seed word %q: %w", w, err)
		}
	}
	log.Debugf("Seeded %d suspicious words", len(words))
	return len(words), nil
}
