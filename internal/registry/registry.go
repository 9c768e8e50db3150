package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ashwch/hubnav/internal/hubext"
)

var (
	ErrDuplicateCommand = errors.New("command already registered")
	ErrUnknownCommand   = errors.New("unknown command")
)

// Entry is the read-only view of a registered command.
type Entry struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Caption string `json:"caption"`
}

// Commands is an in-memory command registry. The first registration of an id
// wins; later ones are rejected with ErrDuplicateCommand.
type Commands struct {
	mu       sync.RWMutex
	order    []string
	commands map[string]hubext.Command
}

func NewCommands() *Commands {
	return &Commands{commands: map[string]hubext.Command{}}
}

func (r *Commands) AddCommand(id string, cmd hubext.Command) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("command id cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.commands[id]; exists {
		return fmt.Errorf("%s: %w", id, ErrDuplicateCommand)
	}
	r.commands[id] = cmd
	r.order = append(r.order, id)
	return nil
}

func (r *Commands) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.commands[id]
	return ok
}

// IDs returns command ids in registration order.
func (r *Commands) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

func (r *Commands) Describe(id string) (Entry, error) {
	r.mu.RLock()
	cmd, ok := r.commands[id]
	r.mu.RUnlock()
	if !ok {
		return Entry{}, fmt.Errorf("%s: %w", id, ErrUnknownCommand)
	}
	return Entry{ID: id, Label: cmd.Label, Caption: cmd.Caption}, nil
}

func (r *Commands) Entries() []Entry {
	ids := r.IDs()
	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		entry, err := r.Describe(id)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// Execute runs the command registered under id. The registry lock is not held
// while the command runs.
func (r *Commands) Execute(id string) error {
	r.mu.RLock()
	cmd, ok := r.commands[id]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrUnknownCommand)
	}
	if cmd.Execute == nil {
		return nil
	}
	return cmd.Execute()
}

// Palette collects palette items in insertion order.
type Palette struct {
	mu    sync.RWMutex
	items []hubext.PaletteItem
}

func NewPalette() *Palette {
	return &Palette{}
}

func (p *Palette) AddItem(item hubext.PaletteItem) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = append(p.items, item)
}

func (p *Palette) Items() []hubext.PaletteItem {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]hubext.PaletteItem(nil), p.items...)
}
