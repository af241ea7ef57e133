package viewlog

import (
	"errors"
	"fmt"
	"imgstore/internal/structures"
	"strings"
)

// DisabledPlaceholder is the shipped default connection; it turns the view log off.
const DisabledPlaceholder = "YOUR CONNECTION STRING FOR TABLE"

const (
	connectionSetting = "viewLog.connection"
	badgerScheme      = "badger:"
	memoryTarget      = "memory"
)

// TableConnection selects where the table lives: an in-memory database or
// a badger directory.
type TableConnection struct {
	InMemory bool
	Dir      string
}

// IsDisabled reports whether raw leaves the view log switched off.
func IsDisabled(raw string) bool {
	raw = strings.TrimSpace(raw)
	return raw == "" || raw == DisabledPlaceholder
}

// ParseTableConnection accepts badger:memory, badger:<dir> and badger://<dir>.
func ParseTableConnection(raw string) (*TableConnection, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, badgerScheme) {
		return nil, &structures.ConfigurationError{
			Setting: connectionSetting,
			Err:     fmt.Errorf("unsupported connection %q", raw),
		}
	}
	target := strings.TrimPrefix(strings.TrimPrefix(raw, badgerScheme), "//")
	switch target {
	case "":
		return nil, &structures.ConfigurationError{Setting: connectionSetting, Err: errors.New("missing badger directory")}
	case memoryTarget:
		return &TableConnection{InMemory: true}, nil
	}
	return &TableConnection{Dir: target}, nil
}
