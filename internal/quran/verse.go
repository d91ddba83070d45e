package quran

import (
	"fmt"
	"strconv"
)

// Verse is a single ayah's content as supplied by the content provider.
// The engine never fetches verses itself; it receives them already resolved.
type Verse struct {
	ID            string
	SurahNumber   int
	NumberInSurah int
	Text          string
	Translation   string
}

// Surah is an ordered collection of verses.
type Surah struct {
	Number int
	Name   string
	Ayahs  []Verse
}

// AyahID returns the verse's canonical identifier.
func (v Verse) AyahID() string {
	if v.ID != "" {
		return v.ID
	}
	return FormatAyahID(v.SurahNumber, v.NumberInSurah)
}

// FormatAyahID builds the XXXYYY ayah identifier: three digits of surah
// number followed by three digits of ayah number (e.g. 2:255 -> "002255").
func FormatAyahID(surah, ayah int) string {
	return fmt.Sprintf("%03d%03d", surah, ayah)
}

// ParseAyahID splits an XXXYYY identifier back into surah and ayah numbers.
func ParseAyahID(id string) (surah, ayah int, err error) {
	if len(id) != 6 {
		return 0, 0, fmt.Errorf("ayah id %q: want 6 digits", id)
	}
	surah, err = strconv.Atoi(id[:3])
	if err != nil {
		return 0, 0, fmt.Errorf("ayah id %q: %w", id, err)
	}
	ayah, err = strconv.Atoi(id[3:])
	if err != nil {
		return 0, 0, fmt.Errorf("ayah id %q: %w", id, err)
	}
	return surah, ayah, nil
}
