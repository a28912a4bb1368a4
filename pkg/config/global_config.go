package config

import "github.com/mipsdisasm/spimdisasm/pkg/endian"

// GlobalConfig is the top-level configuration value that seeds the
// builder pipeline (spec.md §4.2). It is the root of the linear
// ContextBuilder chain in package context.
type GlobalConfig struct {
	endian             endian.Endian
	gpConfig           *GpConfig
	macroLabels        *MacroLabels
	emitSizeDirective  bool
}

// NewGlobalConfig builds a GlobalConfig with the teacher's "on by
// default" posture: macro labels present, size directives emitted, no gp
// configuration (not PIC) until WithGpConfig attaches one. A GOT can only
// be added later in the pipeline if that GpConfig says PIC.
func NewGlobalConfig(e endian.Endian) GlobalConfig {
	labels := DefaultMacroLabels()
	return GlobalConfig{
		endian:            e,
		gpConfig:          nil,
		macroLabels:       &labels,
		emitSizeDirective: true,
	}
}

func (c GlobalConfig) Endian() endian.Endian { return c.endian }

func (c GlobalConfig) GpConfig() *GpConfig { return c.gpConfig }

// WithGpConfig returns a copy with the $gp configuration set; used once
// a PIC dynamic section has been parsed.
func (c GlobalConfig) WithGpConfig(gp GpConfig) GlobalConfig {
	c.gpConfig = &gp
	return c
}

func (c GlobalConfig) MacroLabels() *MacroLabels { return c.macroLabels }

func (c GlobalConfig) EmitSizeDirective() bool { return c.emitSizeDirective }

func (c GlobalConfig) WithEmitSizeDirective(v bool) GlobalConfig {
	c.emitSizeDirective = v
	return c
}

// Pic reports whether this configuration describes Position Independent
// Code, i.e. whether a GpConfig has been attached and it says so.
func (c GlobalConfig) Pic() bool {
	return c.gpConfig != nil && c.gpConfig.Pic()
}
