package client

import (
	"crypto/tls"
	"log/slog"
	"mime"
	"time"
)

// Option is a functional option for configuring the client.
type Option func(*Options)

// Options holds all client configuration.
type Options struct {
	// TLSConfig is the TLS configuration for TLS connections.
	TLSConfig *tls.Config

	// Logger is the structured logger.
	Logger *slog.Logger

	// ReadTimeout is the timeout for reading a single response unit. Zero
	// disables the deadline.
	ReadTimeout time.Duration

	// WriteTimeout is the timeout for writing a command.
	WriteTimeout time.Duration

	// IdleTimeout is the read deadline applied while idling. Servers may
	// drop an IDLE after 30 minutes (RFC 2177), so the default stays just
	// under that.
	IdleTimeout time.Duration

	// IdleKeepalive re-issues IDLE when IdleTimeout expires instead of
	// reporting a timeout to the caller.
	IdleKeepalive bool

	// UnsolicitedCapacity is the capacity of the unsolicited response
	// channel. When full, the oldest entry is dropped.
	UnsolicitedCapacity int

	// WordDecoder decodes RFC 2047 encoded words in envelope fields. Nil
	// leaves the fields raw.
	WordDecoder *mime.WordDecoder

	// DebugLog enables wire-level protocol logging at debug level.
	DebugLog bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		Logger:              slog.Default(),
		WriteTimeout:        1 * time.Minute,
		IdleTimeout:         29 * time.Minute,
		IdleKeepalive:       true,
		UnsolicitedCapacity: 64,
	}
}

// WithTLSConfig sets the TLS configuration.
func WithTLSConfig(config *tls.Config) Option {
	return func(o *Options) {
		o.TLSConfig = config
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithReadTimeout sets the read timeout.
func WithReadTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.ReadTimeout = d
	}
}

// WithWriteTimeout sets the write timeout.
func WithWriteTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.WriteTimeout = d
	}
}

// WithIdleTimeout sets the IDLE read deadline.
func WithIdleTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.IdleTimeout = d
	}
}

// WithIdleKeepalive controls automatic IDLE renewal on timeout.
func WithIdleKeepalive(enable bool) Option {
	return func(o *Options) {
		o.IdleKeepalive = enable
	}
}

// WithUnsolicitedCapacity sets the unsolicited channel capacity.
func WithUnsolicitedCapacity(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.UnsolicitedCapacity = n
		}
	}
}

// WithWordDecoder sets the decoder for RFC 2047 encoded words in
// envelope subject and address names.
func WithWordDecoder(d *mime.WordDecoder) Option {
	return func(o *Options) {
		o.WordDecoder = d
	}
}

// WithDebugLog enables wire-level protocol logging.
func WithDebugLog(enable bool) Option {
	return func(o *Options) {
		o.DebugLog = enable
	}
}
