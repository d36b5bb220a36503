package main

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// checkGuess compares a guess to the target word and returns per-letter results.
// The first pass marks exact matches and consumes those target positions; the
// second pass scans the remaining target letters left to right, consuming one
// per match, so duplicate letters in the guess never score more than their
// occurrence count in the target.
func checkGuess(guess, target string) []GuessResult {
	result := make([]GuessResult, WordLength)
	targetCopy := []rune(target)

	for i := 0; i < WordLength; i++ {
		if guess[i] == target[i] {
			result[i] = GuessResult{Letter: string(guess[i]), Status: GuessStatusCorrect}
			targetCopy[i] = ' '
		}
	}

	for i := 0; i < WordLength; i++ {
		if result[i].Status == "" {
			result[i].Letter = string(guess[i])

			found := false
			for j := 0; j < WordLength; j++ {
				if targetCopy[j] == rune(guess[i]) {
					result[i].Status = GuessStatusPresent
					targetCopy[j] = ' '
					found = true
					break
				}
			}

			if !found {
				result[i].Status = GuessStatusAbsent
			}
		}
	}

	return result
}

// isWinningResult returns true if every letter scored correct.
func isWinningResult(result []GuessResult) bool {
	return lo.EveryBy(result, func(r GuessResult) bool {
		return r.Status == GuessStatusCorrect
	})
}

// revealStatuses reduces a scored row to its status sequence for persistence.
func revealStatuses(result []GuessResult) []string {
	return lo.Map(result, func(r GuessResult, _ int) string { return r.Status })
}

// mergeKeyHint folds one letter verdict into the on-screen keyboard state.
// A key already marked correct is never downgraded; present only overwrites
// an unmarked or absent key.
func mergeKeyHint(hints map[string]string, letter, status string) {
	switch hints[letter] {
	case GuessStatusCorrect:
		return
	case GuessStatusPresent:
		if status != GuessStatusCorrect {
			return
		}
	}
	hints[letter] = status
}

// buildShareGrid renders the day's reveals as the shareable emoji card:
// a title line, one emoji row per submitted guess, and a trailing link.
func buildShareGrid(dayKey string, reveals [][]string, finished bool, link string) string {
	emoji := map[string]string{
		GuessStatusCorrect: "🟩",
		GuessStatusPresent: "🟨",
		GuessStatusAbsent:  "⬜",
	}
	rows := lo.FilterMap(reveals, func(row []string, _ int) (string, bool) {
		if len(row) == 0 {
			return "", false
		}
		var b strings.Builder
		for _, status := range row {
			block, ok := emoji[status]
			if !ok {
				block = "⬜"
			}
			b.WriteString(block)
		}
		return b.String(), true
	})

	status := fmt.Sprintf("X/%d", MaxRows)
	if finished {
		status = fmt.Sprintf("%d/%d", len(rows), MaxRows)
	}
	title := fmt.Sprintf("BibleVerseQuest — Daily %s %s", dayKey, status)
	return strings.TrimSpace(title + "\n" + strings.Join(rows, "\n") + "\n" + link)
}
