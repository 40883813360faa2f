package tts

import (
	"errors"
	"fmt"
)

// ErrVoiceNotFound is returned when a voice id is not in the catalog.
var ErrVoiceNotFound = errors.New("voice not found")

// Voice describes a selectable voice.
type Voice struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Lang        string `json:"lang"`
	Description string `json:"description"`
}

// Catalog is a fixed, ordered set of voices. It is read-only after creation.
type Catalog struct {
	voices []Voice
}

// NewCatalog creates a catalog holding voices in the given order.
func NewCatalog(voices ...Voice) *Catalog {
	return &Catalog{voices: append([]Voice(nil), voices...)}
}

// DefaultCatalog returns the built-in Russian voice catalog.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Voice{
			ID:          "default",
			Name:        "По умолчанию",
			Lang:        "ru-RU",
			Description: "Стандартный русский голос",
		},
		Voice{
			ID:          "female",
			Name:        "Женский голос",
			Lang:        "ru-RU",
			Description: "Женский русский голос",
		},
		Voice{
			ID:          "male",
			Name:        "Мужской голос",
			Lang:        "ru-RU",
			Description: "Мужской русский голос",
		},
	)
}

// List returns the voices in declaration order.
func (c *Catalog) List() []Voice {
	return append([]Voice(nil), c.voices...)
}

// Validate reports whether id names a voice in the catalog.
func (c *Catalog) Validate(id string) bool {
	_, err := c.Lookup(id)
	return err == nil
}

// Lookup returns the voice with the given id.
func (c *Catalog) Lookup(id string) (Voice, error) {
	for _, v := range c.voices {
		if v.ID == id {
			return v, nil
		}
	}
	return Voice{}, fmt.Errorf("%w: %q", ErrVoiceNotFound, id)
}
