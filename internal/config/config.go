package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olivier-w/frictionlab/internal/friction"
	"github.com/spf13/viper"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the whole application configuration.
type Config struct {
	Logger         LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	Physics        PhysicsConfig   `mapstructure:"physics" yaml:"physics"`
	Layout         LayoutConfig    `mapstructure:"layout" yaml:"layout"`
	Surfaces       []SurfaceConfig `mapstructure:"surfaces" yaml:"surfaces"`
	DefaultSurface string          `mapstructure:"default_surface" yaml:"default_surface"`
	UI             UIConfig        `mapstructure:"ui" yaml:"ui"`
	Audio          AudioConfig     `mapstructure:"audio" yaml:"audio"`
}

type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
}

type PhysicsConfig struct {
	Gravity         float64       `mapstructure:"gravity" yaml:"gravity"`
	MaxPull         float64       `mapstructure:"max_pull" yaml:"max_pull"`
	KineticJitter   float64       `mapstructure:"kinetic_jitter" yaml:"kinetic_jitter"`
	StaticJitter    float64       `mapstructure:"static_jitter" yaml:"static_jitter"`
	WobbleJitter    float64       `mapstructure:"wobble_jitter" yaml:"wobble_jitter"`
	BreakawayWindow time.Duration `mapstructure:"breakaway_window" yaml:"breakaway_window"`
	WobblePeriod    time.Duration `mapstructure:"wobble_period" yaml:"wobble_period"`
	BaseMass        float64       `mapstructure:"base_mass" yaml:"base_mass"`
	WeightMass      float64       `mapstructure:"weight_mass" yaml:"weight_mass"`
	MaxWeights      int           `mapstructure:"max_weights" yaml:"max_weights"`
}

// LayoutConfig is the bench geometry in device pixels.
type LayoutConfig struct {
	BlockRest   float64 `mapstructure:"block_rest" yaml:"block_rest"`
	MeterRest   float64 `mapstructure:"meter_rest" yaml:"meter_rest"`
	MeterMin    float64 `mapstructure:"meter_min" yaml:"meter_min"`
	MeterWidth  float64 `mapstructure:"meter_width" yaml:"meter_width"`
	UnitPx      float64 `mapstructure:"unit_px" yaml:"unit_px"`
	Divisions   float64 `mapstructure:"divisions" yaml:"divisions"`
	ReadingSpan float64 `mapstructure:"reading_span" yaml:"reading_span"`
	ReadingPad  float64 `mapstructure:"reading_pad" yaml:"reading_pad"`
	AreaHeight  float64 `mapstructure:"area_height" yaml:"area_height"`
	BlockBottom float64 `mapstructure:"block_bottom" yaml:"block_bottom"`
	HookDrop    float64 `mapstructure:"hook_drop" yaml:"hook_drop"`
}

type SurfaceConfig struct {
	Name        string  `mapstructure:"name" yaml:"name"`
	Coefficient float64 `mapstructure:"coefficient" yaml:"coefficient"`
	StaticRatio float64 `mapstructure:"static_ratio" yaml:"static_ratio"`
}

type UIConfig struct {
	CellWidth     float64       `mapstructure:"cell_width" yaml:"cell_width"` // device pixels per terminal column
	FPS           int           `mapstructure:"fps" yaml:"fps"`
	ToastDuration time.Duration `mapstructure:"toast_duration" yaml:"toast_duration"`
	PulseDuration time.Duration `mapstructure:"pulse_duration" yaml:"pulse_duration"`
}

type AudioConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	Frequency float64       `mapstructure:"frequency" yaml:"frequency"`
	Duration  time.Duration `mapstructure:"duration" yaml:"duration"`
	Volume    float64       `mapstructure:"volume" yaml:"volume"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "frictionlab")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
	v.SetDefault("logger.add_source", false)

	// -- Physics --
	p := friction.DefaultParams()
	v.SetDefault("physics.gravity", p.Gravity)
	v.SetDefault("physics.max_pull", p.MaxPull)
	v.SetDefault("physics.kinetic_jitter", p.KineticJitter)
	v.SetDefault("physics.static_jitter", p.StaticJitter)
	v.SetDefault("physics.wobble_jitter", p.WobbleJitter)
	v.SetDefault("physics.breakaway_window", p.BreakawayWindow)
	v.SetDefault("physics.wobble_period", p.WobblePeriod)
	v.SetDefault("physics.base_mass", p.BaseMass)
	v.SetDefault("physics.weight_mass", p.WeightMass)
	v.SetDefault("physics.max_weights", p.MaxWeights)

	// -- Layout --
	l := p.Layout
	v.SetDefault("layout.block_rest", l.BlockRest)
	v.SetDefault("layout.meter_rest", l.MeterRest)
	v.SetDefault("layout.meter_min", l.MeterMin)
	v.SetDefault("layout.meter_width", l.MeterWidth)
	v.SetDefault("layout.unit_px", l.UnitPx)
	v.SetDefault("layout.divisions", l.Divisions)
	v.SetDefault("layout.reading_span", l.ReadingSpan)
	v.SetDefault("layout.reading_pad", l.ReadingPad)
	v.SetDefault("layout.area_height", l.AreaHeight)
	v.SetDefault("layout.block_bottom", l.BlockBottom)
	v.SetDefault("layout.hook_drop", l.HookDrop)

	// -- Surfaces --
	var surfaces []map[string]any
	for _, t := range friction.DefaultTrials() {
		surfaces = append(surfaces, map[string]any{
			"name":         t.Surface.String(),
			"coefficient":  t.Coefficient,
			"static_ratio": t.StaticRatio,
		})
	}
	v.SetDefault("surfaces", surfaces)
	v.SetDefault("default_surface", p.Default.Surface.String())

	// -- UI --
	v.SetDefault("ui.cell_width", 8.0)
	v.SetDefault("ui.fps", 30)
	v.SetDefault("ui.toast_duration", 3*time.Second)
	v.SetDefault("ui.pulse_duration", 500*time.Millisecond)

	// -- Audio --
	v.SetDefault("audio.enabled", false)
	v.SetDefault("audio.frequency", 880.0)
	v.SetDefault("audio.duration", 40*time.Millisecond)
	v.SetDefault("audio.volume", 0.6)
}

// NewDefaultConfig returns the configuration with nothing but defaults.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load reads path (or ./frictionlab.yaml when path is empty), applies
// FRICTIONLAB_* environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("frictionlab")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("FRICTIONLAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks physical and geometric sanity.
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	p := c.Physics
	if p.Gravity <= 0 {
		fail("physics.gravity must be positive, got %v", p.Gravity)
	}
	if p.MaxPull <= 0 {
		fail("physics.max_pull must be positive, got %v", p.MaxPull)
	}
	for name, j := range map[string]float64{
		"kinetic_jitter": p.KineticJitter,
		"static_jitter":  p.StaticJitter,
		"wobble_jitter":  p.WobbleJitter,
	} {
		if j < 0 || j >= 1 {
			fail("physics.%s must be in [0,1), got %v", name, j)
		}
	}
	if p.BreakawayWindow <= 0 || p.WobblePeriod <= 0 {
		fail("physics timers must be positive")
	}
	if p.BaseMass <= 0 || p.WeightMass <= 0 || p.MaxWeights < 0 {
		fail("physics mass settings must be positive")
	}

	l := c.Layout
	if l.MeterMin >= l.MeterRest {
		fail("layout.meter_min (%v) must be left of layout.meter_rest (%v)", l.MeterMin, l.MeterRest)
	}
	if l.MeterRest+l.MeterWidth > l.BlockRest {
		fail("meter overlaps block at rest")
	}
	if l.UnitPx <= 0 || l.Divisions <= 0 {
		fail("layout.unit_px and layout.divisions must be positive")
	}

	if _, err := c.Trials(); err != nil {
		errs = append(errs, err)
	} else if _, err := c.defaultTrial(); err != nil {
		errs = append(errs, err)
	}

	if c.UI.CellWidth <= 0 || c.UI.FPS <= 0 {
		fail("ui.cell_width and ui.fps must be positive")
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		fail("audio.volume must be in [0,1], got %v", c.Audio.Volume)
	}
	return errors.Join(errs...)
}

// Trials returns the configured surface presets in order.
func (c *Config) Trials() ([]friction.Trial, error) {
	if len(c.Surfaces) == 0 {
		return nil, fmt.Errorf("%w: no surfaces configured", ErrInvalid)
	}
	out := make([]friction.Trial, 0, len(c.Surfaces))
	seen := make(map[friction.Surface]bool)
	for _, sc := range c.Surfaces {
		s, ok := friction.ParseSurface(sc.Name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown surface %q", ErrInvalid, sc.Name)
		}
		if seen[s] {
			return nil, fmt.Errorf("%w: surface %q listed twice", ErrInvalid, sc.Name)
		}
		seen[s] = true
		if sc.Coefficient <= 0 || sc.StaticRatio < 1 {
			return nil, fmt.Errorf("%w: surface %q needs coefficient > 0 and static_ratio >= 1", ErrInvalid, sc.Name)
		}
		out = append(out, friction.Trial{Surface: s, Coefficient: sc.Coefficient, StaticRatio: sc.StaticRatio})
	}
	return out, nil
}

// Trial returns the preset for the named surface.
func (c *Config) Trial(name string) (friction.Trial, error) {
	trials, err := c.Trials()
	if err != nil {
		return friction.Trial{}, err
	}
	s, ok := friction.ParseSurface(name)
	if !ok {
		return friction.Trial{}, fmt.Errorf("%w: unknown surface %q", ErrInvalid, name)
	}
	for _, t := range trials {
		if t.Surface == s {
			return t, nil
		}
	}
	return friction.Trial{}, fmt.Errorf("%w: surface %q has no preset", ErrInvalid, name)
}

func (c *Config) defaultTrial() (friction.Trial, error) {
	return c.Trial(c.DefaultSurface)
}

// Params converts the configuration into session parameters.
func (c *Config) Params() (friction.Params, error) {
	def, err := c.defaultTrial()
	if err != nil {
		return friction.Params{}, err
	}
	p, l := c.Physics, c.Layout
	return friction.Params{
		Gravity:         p.Gravity,
		MaxPull:         p.MaxPull,
		KineticJitter:   p.KineticJitter,
		StaticJitter:    p.StaticJitter,
		WobbleJitter:    p.WobbleJitter,
		BreakawayWindow: p.BreakawayWindow,
		WobblePeriod:    p.WobblePeriod,
		BaseMass:        p.BaseMass,
		WeightMass:      p.WeightMass,
		MaxWeights:      p.MaxWeights,
		Default:         def,
		Layout: friction.Layout{
			BlockRest:   l.BlockRest,
			MeterRest:   l.MeterRest,
			MeterMin:    l.MeterMin,
			MeterWidth:  l.MeterWidth,
			UnitPx:      l.UnitPx,
			Divisions:   l.Divisions,
			ReadingSpan: l.ReadingSpan,
			ReadingPad:  l.ReadingPad,
			AreaHeight:  l.AreaHeight,
			BlockBottom: l.BlockBottom,
			HookDrop:    l.HookDrop,
		},
	}, nil
}
