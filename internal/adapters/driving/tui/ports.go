package tui

import "github.com/custodia-labs/maildeck/internal/core/ports/driving"

// Ports holds the driving ports the TUI talks to.
type Ports struct {
	// Config provides access to configuration entries.
	Config driving.ConfigService
}
