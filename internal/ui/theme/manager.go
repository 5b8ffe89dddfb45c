package theme

import (
	"sort"
	"sync"
)

// DefaultName is the theme used until another one is selected.
const DefaultName = "tokyonight"

var globalManager = &manager{
	themes: make(map[string]Palette),
}

type manager struct {
	mu          sync.RWMutex
	themes      map[string]Palette
	currentName string
}

// RegisterTheme adds a theme to the registry.
// The first registered theme becomes the current one.
func RegisterTheme(name string, p Palette) {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	globalManager.themes[name] = p
	if globalManager.currentName == "" {
		globalManager.currentName = name
	}
}

// SetTheme switches to a registered theme by name.
// Returns true if the theme was found and set.
func SetTheme(name string) bool {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	if _, ok := globalManager.themes[name]; ok {
		globalManager.currentName = name
		return true
	}
	return false
}

// Current returns the active palette.
func Current() Palette {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	return globalManager.themes[globalManager.currentName]
}

// CurrentName returns the name of the active theme.
func CurrentName() string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	return globalManager.currentName
}

// Available returns all registered theme names in sorted order.
func Available() []string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	return sortedNames(globalManager.themes)
}

// CycleTheme switches to the next theme in sorted order and returns its name.
func CycleTheme() string {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	names := sortedNames(globalManager.themes)
	if len(names) == 0 {
		return ""
	}
	next := 0
	for i, name := range names {
		if name == globalManager.currentName {
			next = (i + 1) % len(names)
			break
		}
	}
	globalManager.currentName = names[next]
	return globalManager.currentName
}

func sortedNames(themes map[string]Palette) []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
