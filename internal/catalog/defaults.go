package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Defaults is the persisted (language, topic) pair used when the user does
// not name a catalog explicitly.
type Defaults struct {
	Language string `toml:"language"`
	Topic    string `toml:"topic"`
}

// LoadDefaults reads the defaults document. A missing file is not an error
// and yields the zero value.
func LoadDefaults(path string) (Defaults, error) {
	var d Defaults
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return d, nil
		}
		return d, fmt.Errorf("read defaults: %w", err)
	}
	if err := toml.Unmarshal(data, &d); err != nil {
		return Defaults{}, fmt.Errorf("parse defaults %q: %w", path, err)
	}
	return d, nil
}

// SaveDefaults writes the (language, topic) pair, merging with any
// unrelated keys already present in the document.
func SaveDefaults(path string, d Defaults) error {
	document := map[string]any{}
	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, &document); err != nil {
			return fmt.Errorf("parse defaults %q: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read defaults: %w", err)
	}

	document["language"] = d.Language
	document["topic"] = d.Topic

	data, err := toml.Marshal(document)
	if err != nil {
		return fmt.Errorf("encode defaults: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create defaults directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write defaults: %w", err)
	}
	return nil
}

// ResolveIdentity determines the catalog identity from explicit values,
// falling back to persisted defaults and finally to the English
// all-disciplines catalog.
func ResolveIdentity(defaultsPath, language, topic string) (Identity, error) {
	stored, err := LoadDefaults(defaultsPath)
	if err != nil {
		return Identity{}, err
	}

	if language == "" {
		language = stored.Language
	}
	if language == "" {
		language = string(LanguageEnglish)
	}
	if topic == "" {
		topic = stored.Topic
	}
	if topic == "" {
		topic = string(TopicAllDisciplines)
	}

	lang, err := ParseLanguage(language)
	if err != nil {
		return Identity{}, err
	}
	top, err := ParseTopic(topic)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Language: lang, Topic: top}, nil
}
