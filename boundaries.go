package main

// Renderer receives grid updates from the engine. The JSON API reads state
// snapshots directly, so the default renderer does nothing; an embedding UI
// supplies its own implementation.
type Renderer interface {
	DrawGrid(guesses [][]string)
	ColorizeRow(row int, result []GuessResult)
	UpdateKeyHints(hints map[string]string)
}

// Notifier shows transient user-facing notices, such as idle-expiry toasts.
type Notifier interface {
	Toast(text string)
}

type noopRenderer struct{}

func (noopRenderer) DrawGrid([][]string)              {}
func (noopRenderer) ColorizeRow(int, []GuessResult)   {}
func (noopRenderer) UpdateKeyHints(map[string]string) {}

type noopNotifier struct{}

func (noopNotifier) Toast(string) {}
