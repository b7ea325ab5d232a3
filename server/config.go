package server

import (
	"time"

	"github.com/gogpu/gg/text"

	"github.com/gogpu/flowviz/figure"
)

// Config configures a Server. Zero fields take the values of
// DefaultConfig.
type Config struct {
	// Addr is the TCP address to listen on, ":8080" by default.
	Addr string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	// ShutdownTimeout bounds the graceful shutdown after the serving
	// context is cancelled.
	ShutdownTimeout time.Duration

	// Width and Height are the size of the PNG figure in pixels.
	Width, Height int

	// Font is the label font of the PNG figure; Go Regular when nil.
	Font *text.FontSource
}

// DefaultConfig returns the configuration used for zero fields.
func DefaultConfig() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		Width:             1000,
		Height:            800,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	for _, f := range []struct{ v, def *time.Duration }{
		{&c.ReadHeaderTimeout, &d.ReadHeaderTimeout},
		{&c.ReadTimeout, &d.ReadTimeout},
		{&c.WriteTimeout, &d.WriteTimeout},
		{&c.IdleTimeout, &d.IdleTimeout},
		{&c.ShutdownTimeout, &d.ShutdownTimeout},
	} {
		if *f.v <= 0 {
			*f.v = *f.def
		}
	}
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	return c
}

// figureOptions returns the figure options for the PNG endpoint.
func (c Config) figureOptions() []figure.Option {
	opts := []figure.Option{figure.WithSize(c.Width, c.Height)}
	if c.Font != nil {
		opts = append(opts, figure.WithFontSource(c.Font))
	}
	return opts
}
