// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dataset

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/chautari-app/chautari/models"
)

//go:embed seed/*.json
var seedFS embed.FS

// Dataset is the bundled reference data: the complete event, party, and
// constituency catalog the static provider serves, and the seed the
// reference server loads into an empty database.
type Dataset struct {
	Parties        []models.Party
	Constituencies []models.Constituency
	Events         []models.Event
	EventTypes     map[string]models.EventTypeInfo
}

// Load decodes the embedded seed files. The returned dataset is freshly
// allocated on every call; callers may not share or mutate a single copy
// across consumers that expect isolation.
func Load() (*Dataset, error) {
	var parties struct {
		Parties []models.Party `json:"parties"`
	}
	if err := decode("seed/parties.json", &parties); err != nil {
		return nil, err
	}

	var constituencies struct {
		Constituencies []models.Constituency `json:"constituencies"`
	}
	if err := decode("seed/constituencies.json", &constituencies); err != nil {
		return nil, err
	}

	var events struct {
		Events     []models.Event                  `json:"events"`
		EventTypes map[string]models.EventTypeInfo `json:"event_types"`
	}
	if err := decode("seed/events.json", &events); err != nil {
		return nil, err
	}

	return &Dataset{
		Parties:        parties.Parties,
		Constituencies: constituencies.Constituencies,
		Events:         events.Events,
		EventTypes:     events.EventTypes,
	}, nil
}

func decode(name string, v any) error {
	data, err := seedFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// Party returns the party with the given id, or nil.
func (d *Dataset) Party(id string) *models.Party {
	for i := range d.Parties {
		if d.Parties[i].ID == id {
			return &d.Parties[i]
		}
	}
	return nil
}

// Constituency returns the constituency with the given id, or nil.
func (d *Dataset) Constituency(id string) *models.Constituency {
	for i := range d.Constituencies {
		if d.Constituencies[i].ID == id {
			return &d.Constituencies[i]
		}
	}
	return nil
}

// Event returns the event with the given id, or nil.
func (d *Dataset) Event(id string) *models.Event {
	for i := range d.Events {
		if d.Events[i].ID == id {
			return &d.Events[i]
		}
	}
	return nil
}
