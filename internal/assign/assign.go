// Package assign draws a random dish for each participant.
package assign

import (
	"errors"
	"math/rand/v2"

	"github.com/raine/telegram-sushi-bot/internal/menu"
)

// ErrEmptyCatalog is returned when there is nothing to draw from.
var ErrEmptyCatalog = errors.New("menu catalog is empty")

// Assignment is the dish drawn for one participant.
type Assignment struct {
	Participant string
	Entry       menu.Entry
}

// Result holds one assignment per participant, in input order.
type Result []Assignment

// Lookup returns the entry drawn for participant.
func (r Result) Lookup(participant string) (menu.Entry, bool) {
	for _, a := range r {
		if a.Participant == participant {
			return a.Entry, true
		}
	}
	return menu.Entry{}, false
}

// Assign draws one entry per participant, uniformly and with replacement, so
// two participants may get the same dish. The same catalog, participants and
// seed always give the same result. Repeated participant ids keep their first
// position and get a single draw.
func Assign(catalog menu.Catalog, participants []string, seed int64) (Result, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	seen := make(map[string]struct{}, len(participants))
	result := make(Result, 0, len(participants))
	for _, p := range participants {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		result = append(result, Assignment{
			Participant: p,
			Entry:       catalog[rng.IntN(len(catalog))],
		})
	}
	return result, nil
}
