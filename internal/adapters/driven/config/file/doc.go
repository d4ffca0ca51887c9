// Package file provides the file-based implementation of the ConfigStore
// driven port. Entries are persisted to a TOML file with an explicit
// kind tag per entry, so a value set as an integer is read back as an
// integer rather than a string.
package file
