package config

import (
	"time"

	"github.com/dmaloney/lanprobe/internal/probe"
)

// Bounds and defaults for scan tuning values
const (
	MinTimeoutMs     = 1000
	MaxTimeoutMs     = 10000
	DefaultTimeoutMs = 2000
)

// Config represents a named, persisted scan configuration
type Config struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Targets     []string       `json:"targets"`
	RangeStart  string         `json:"rangeStart"`
	RangeEnd    string         `json:"rangeEnd"`
	Ports       []probe.Port   `json:"ports"`
	TimeoutMs   int            `json:"timeoutMs"`
	Concurrency int            `json:"concurrency"`
	Strategy    probe.Strategy `json:"strategy"`
	Loaded      time.Time      `json:"loaded"`
}

// DefaultPorts returns the built-in table of well known service ports
func DefaultPorts() []probe.Port {
	return []probe.Port{
		{Number: 21, Label: "FTP", Scheme: probe.SchemePlain},
		{Number: 22, Label: "SSH", Scheme: probe.SchemePlain},
		{Number: 53, Label: "DNS", Scheme: probe.SchemePlain},
		{Number: 80, Label: "HTTP", Scheme: probe.SchemePlain},
		{Number: 443, Label: "HTTPS", Scheme: probe.SchemeTLS},
		{Number: 445, Label: "SMB", Scheme: probe.SchemePlain},
		{Number: 3000, Label: "Dev Server", Scheme: probe.SchemePlain},
		{Number: 3389, Label: "RDP", Scheme: probe.SchemePlain},
		{Number: 5432, Label: "PostgreSQL", Scheme: probe.SchemePlain},
		{Number: 8080, Label: "HTTP Alt", Scheme: probe.SchemePlain},
		{Number: 8443, Label: "HTTPS Alt", Scheme: probe.SchemeTLS},
	}
}
