package plugin

import (
	"crypto/sha256"
	"errors"
	"strings"
)

// Info contains plugin metadata
type Info struct {
	ID       string // Unique plugin identifier (e.g., "com.example.myplugin")
	Name     string // Display name
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string // Company/developer name
	Category string // Plugin category (e.g., "Fx", "Instrument")

	AcceptsMIDI  bool
	ProducesMIDI bool
	IsMIDIEffect bool
	TailSeconds  float64
	Programs     []string // Program names; at least one
}

// UID derives a stable 16-byte identifier from the string ID.
func (i Info) UID() [16]byte {
	var uid [16]byte
	sum := sha256.Sum256([]byte(i.ID))
	copy(uid[:], sum[:16])
	return uid
}

// ValidateUID reports whether the ID can produce a usable UID.
func (i Info) ValidateUID() error {
	if strings.TrimSpace(i.ID) == "" {
		return errors.New("plugin: empty plugin ID")
	}
	return nil
}

// NumPrograms returns the program count. Hosts expect at least one.
func (i Info) NumPrograms() int {
	if len(i.Programs) == 0 {
		return 1
	}
	return len(i.Programs)
}

// ProgramName returns the name of a program, or "" if out of range.
func (i Info) ProgramName(index int) string {
	if len(i.Programs) == 0 && index == 0 {
		return "Default"
	}
	if index < 0 || index >= len(i.Programs) {
		return ""
	}
	return i.Programs[index]
}
