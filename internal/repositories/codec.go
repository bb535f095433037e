package repositories

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/desertthunder/shelf/internal/shared"
	"github.com/goccy/go-yaml"
)

// documentBook is the on-disk shape of a record. The document carries no id; ids are assigned on load.
type documentBook struct {
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
	Year   int    `json:"year" yaml:"year"`
	Genre  string `json:"genre" yaml:"genre"`
	Read   bool   `json:"read" yaml:"read"`
}

// codec encodes and decodes the catalog document.
type codec interface {
	Marshal(books []documentBook) ([]byte, error)
	Unmarshal(data []byte) ([]documentBook, error)
}

type jsonCodec struct{}

func (jsonCodec) Marshal(books []documentBook) ([]byte, error) {
	return json.MarshalIndent(books, "", "  ")
}

func (jsonCodec) Unmarshal(data []byte) ([]documentBook, error) {
	var books []documentBook
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, err
	}
	return books, nil
}

type yamlCodec struct{}

func (yamlCodec) Marshal(books []documentBook) ([]byte, error) {
	return yaml.Marshal(books)
}

func (yamlCodec) Unmarshal(data []byte) ([]documentBook, error) {
	var books []documentBook
	if err := yaml.Unmarshal(data, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// codecFor picks a codec from the file extension. Files without an extension are JSON.
func codecFor(path string) (codec, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", "":
		return jsonCodec{}, nil
	case ".yaml", ".yml":
		return yamlCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", shared.ErrUnsupportedFormat, ext)
	}
}
