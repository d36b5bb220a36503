package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/samber/lo"
)

// loadWords reads the daily rotation list from the given JSON file, dropping
// any entry that is not exactly five lowercase letters.
func loadWords(path string) ([]WordEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var wl WordList
	if err := json.Unmarshal(data, &wl); err != nil {
		return nil, err
	}
	words := lo.Filter(wl.Words, func(entry WordEntry, _ int) bool {
		if len(entry.Word) != WordLength || !isLowerAlpha(entry.Word) {
			logWarn("Skipping word %q: not %d lowercase letters", entry.Word, WordLength)
			return false
		}
		return true
	})
	return words, nil
}

// dailyTarget selects the day's word via the calendar rotation. Every caller
// on the same local day sees the same entry, regardless of attempt resets.
func dailyTarget(words []WordEntry, now time.Time) WordEntry {
	return words[dailyIndex(now, len(words))]
}

// isLowerAlpha reports whether s consists only of a-z.
func isLowerAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
