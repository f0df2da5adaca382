package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales
var LocalesFS embed.FS

// Catalog holds the outbound message texts for one locale. Keys are flat
// dotted strings; values are fmt format strings.
type Catalog struct {
	messages map[string]string
}

// NewCatalog loads locales/<langCode>.yaml from the given filesystem.
func NewCatalog(fsys fs.FS, langCode string) (*Catalog, error) {
	filePath := filepath.Join("locales", fmt.Sprintf("%s.yaml", langCode))

	data, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("read message catalog %s: %w", filePath, err)
	}

	var messages map[string]string
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("parse message catalog %s: %w", filePath, err)
	}
	return &Catalog{messages: messages}, nil
}

// MustDefault returns the embedded Swedish catalog or panics; for use at
// startup only.
func MustDefault() *Catalog {
	c, err := NewCatalog(LocalesFS, "sv")
	if err != nil {
		panic(err)
	}
	return c
}

// T resolves a key and formats it with args. Unknown keys come back as
// the key itself so a missing message never breaks a send.
func (c *Catalog) T(key string, args ...interface{}) string {
	format, ok := c.messages[key]
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}

// SessionTimeHuman renders an "h:m:s" session duration the way the
// billing emails spell it, e.g. "1 tim 30 min". Malformed input comes
// back unchanged.
func SessionTimeHuman(sessionTime string) string {
	parts := strings.Split(sessionTime, ":")
	if len(parts) < 2 {
		return sessionTime
	}
	return parts[0] + " tim " + parts[1] + " min"
}
