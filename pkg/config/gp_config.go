// Package config holds the small, mostly-immutable configuration values
// threaded through the builder pipeline and read back by the analyser:
// endianness, the $gp / PIC configuration, and macro label names.
package config

import "github.com/mipsdisasm/spimdisasm/pkg/addresses"

// GpConfig records the $gp register's target and whether the binary is
// Position Independent Code.
type GpConfig struct {
	gpValue addresses.Vram
	pic     bool
}

// NewGpConfig builds a GpConfig.
func NewGpConfig(gpValue addresses.Vram, pic bool) GpConfig {
	return GpConfig{gpValue: gpValue, pic: pic}
}

func (c GpConfig) GpValue() addresses.Vram { return c.gpValue }
func (c GpConfig) Pic() bool               { return c.pic }
