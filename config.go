package flowwire

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/petrijr/flowwire/internal/engine"
	"github.com/petrijr/flowwire/pkg/codec"
)

// Config configures an Executor. The tagged fields can be loaded from the
// environment with LoadConfig.
type Config struct {
	PoolSize         int32         `env:"FLOWWIRE_POOL_SIZE" envDefault:"64"`
	ArenaSize        int           `env:"FLOWWIRE_ARENA_SIZE" envDefault:"65536"`
	CommandCapacity  int           `env:"FLOWWIRE_COMMAND_CAPACITY" envDefault:"32"`
	Codec            string        `env:"FLOWWIRE_CODEC" envDefault:"json"`
	AcquireTimeout   time.Duration `env:"FLOWWIRE_ACQUIRE_TIMEOUT"`
	StrictActivities bool          `env:"FLOWWIRE_STRICT_ACTIVITIES"`

	// Observer receives activation callbacks.
	Observer Observer

	// Clock supplies activation time when a request carries none.
	Clock func() time.Time
}

// DefaultConfig returns the configuration LoadConfig produces with an empty
// environment.
func DefaultConfig() Config {
	return Config{
		PoolSize:        64,
		ArenaSize:       64 * 1024,
		CommandCapacity: 32,
		Codec:           codec.NameJSON,
	}
}

// LoadConfig reads Config from FLOWWIRE_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) engineConfig() (engine.Config, error) {
	cdc, err := codec.ByName(c.Codec)
	if err != nil {
		return engine.Config{}, err
	}
	return engine.Config{
		PoolSize:         c.PoolSize,
		ArenaSize:        c.ArenaSize,
		CommandCapacity:  c.CommandCapacity,
		Codec:            cdc,
		Observer:         c.Observer,
		Clock:            c.Clock,
		AcquireTimeout:   c.AcquireTimeout,
		StrictActivities: c.StrictActivities,
	}, nil
}
