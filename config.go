package hohmann

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/spf13/viper"
)

const (
	// ConfigEnv is the environment variable holding the configuration file path.
	ConfigEnv = "HOHMANN_CONFIG"
	// J2000 is the Julian date of the J2000 epoch.
	J2000          = 2451545.0
	dateTimeFormat = "2006-01-02 15:04:05"
)

// Durations are the phase lengths, in discrete steps.
type Durations struct {
	PreBurn, Burn, Coast, PostBurn int
}

// Validate returns a configuration error if any duration is not positive.
func (d Durations) Validate() error {
	for name, n := range map[string]int{"pre_burn": d.PreBurn, "burn": d.Burn, "coast": d.Coast, "post_burn": d.PostBurn} {
		if n <= 0 {
			return fmt.Errorf("%w: duration %s must be a positive number of steps (got %d)", ErrConfiguration, name, n)
		}
	}
	return nil
}

// EllipseConfig configures the fixed ellipse propagation.
type EllipseConfig struct {
	SemiMajorAxis float64 // meters
	Eccentricity  float64
	Steps         int // steps per revolution
}

// Config is the full engine configuration.
type Config struct {
	Body       CentralBody
	Radius     float64 // initial circular orbit radius in meters
	Target     float64 // target radius in meters latched for the next transfer, zero when unset
	Durations  Durations
	IdlePeriod int // steps per revolution when coasting on a circular orbit
	Mode       AnomalyMode
	Ellipse    EllipseConfig
	Export     ExportConfig
}

// DefaultConfig returns the configuration of the reference animation: a
// 1 AU heliocentric orbit targeting 1.5 AU.
func DefaultConfig() Config {
	return Config{
		Body:       Sun,
		Radius:     1.0 * AU,
		Target:     1.5 * AU,
		Durations:  Durations{PreBurn: 500, Burn: 40, Coast: 500, PostBurn: 500},
		IdlePeriod: 2000,
		Mode:       TimeAccurate,
		Ellipse:    EllipseConfig{SemiMajorAxis: 0.387098 * AU, Eccentricity: 0.2056, Steps: 1000},
		Export:     ExportConfig{Filename: "hohmann", Epoch: julian.JDToTime(J2000), StepDuration: time.Hour, Header: true},
	}
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if !(c.Body.GM() > 0) {
		return fmt.Errorf("%w: gravitational parameter of %s must be positive", ErrConfiguration, c.Body.Name)
	}
	if !validRadius(c.Radius) {
		return fmt.Errorf("%w: initial radius must be finite and positive (got %g)", ErrConfiguration, c.Radius)
	}
	// A zero target means none is latched.
	if c.Target != 0 && !validRadius(c.Target) {
		return fmt.Errorf("%w: target radius must be finite and positive (got %g)", ErrConfiguration, c.Target)
	}
	if err := c.Durations.Validate(); err != nil {
		return err
	}
	if c.IdlePeriod <= 0 {
		return fmt.Errorf("%w: idle period must be a positive number of steps (got %d)", ErrConfiguration, c.IdlePeriod)
	}
	if _, err := c.Mode.At(0, 0); err != nil {
		return err
	}
	if _, err := NewConic(c.Ellipse.SemiMajorAxis, c.Ellipse.Eccentricity, c.Body.GM()); err != nil {
		return err
	}
	if c.Ellipse.Steps <= 0 {
		return fmt.Errorf("%w: ellipse steps per revolution must be positive (got %d)", ErrConfiguration, c.Ellipse.Steps)
	}
	return nil
}

// LoadConfig reads the TOML configuration at path (or at $HOHMANN_CONFIG when
// path is empty) on top of DefaultConfig. Every key may be overridden from
// the environment, e.g. HOHMANN_DURATIONS_BURN=20. Radii are given in AU.
func LoadConfig(path string) (Config, error) {
	def := DefaultConfig()
	v := viper.New()
	v.SetDefault("body.name", def.Body.Name)
	v.SetDefault("body.mu", 0.0)
	v.SetDefault("orbit.radius_au", def.Radius/AU)
	v.SetDefault("orbit.target_au", def.Target/AU)
	v.SetDefault("durations.pre_burn", def.Durations.PreBurn)
	v.SetDefault("durations.burn", def.Durations.Burn)
	v.SetDefault("durations.coast", def.Durations.Coast)
	v.SetDefault("durations.post_burn", def.Durations.PostBurn)
	v.SetDefault("propagation.idle_period", def.IdlePeriod)
	v.SetDefault("propagation.mode", def.Mode.String())
	v.SetDefault("ellipse.sma_au", def.Ellipse.SemiMajorAxis/AU)
	v.SetDefault("ellipse.ecc", def.Ellipse.Eccentricity)
	v.SetDefault("ellipse.steps", def.Ellipse.Steps)
	v.SetDefault("export.filename", def.Export.Filename)
	v.SetDefault("export.epoch", J2000)
	v.SetDefault("export.step", def.Export.StepDuration)
	v.SetDefault("export.header", def.Export.Header)
	v.SetEnvPrefix("HOHMANN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w: reading %s: %s", ErrConfiguration, path, err)
		}
	}
	return configFromViper(v)
}

func configFromViper(v *viper.Viper) (Config, error) {
	body, err := CentralBodyFromString(v.GetString("body.name"))
	if err != nil {
		return Config{}, err
	}
	if μ := v.GetFloat64("body.mu"); μ != 0 {
		if body, err = NewCentralBody(body.Name, μ); err != nil {
			return Config{}, err
		}
	}
	mode, err := ParseAnomalyMode(v.GetString("propagation.mode"))
	if err != nil {
		return Config{}, err
	}
	epoch, err := confReadJDEorTime(v, "export.epoch")
	if err != nil {
		return Config{}, err
	}
	conf := Config{
		Body:   body,
		Radius: v.GetFloat64("orbit.radius_au") * AU,
		Target: v.GetFloat64("orbit.target_au") * AU,
		Durations: Durations{
			PreBurn:  v.GetInt("durations.pre_burn"),
			Burn:     v.GetInt("durations.burn"),
			Coast:    v.GetInt("durations.coast"),
			PostBurn: v.GetInt("durations.post_burn"),
		},
		IdlePeriod: v.GetInt("propagation.idle_period"),
		Mode:       mode,
		Ellipse: EllipseConfig{
			SemiMajorAxis: v.GetFloat64("ellipse.sma_au") * AU,
			Eccentricity:  v.GetFloat64("ellipse.ecc"),
			Steps:         v.GetInt("ellipse.steps"),
		},
		Export: ExportConfig{
			Filename:     v.GetString("export.filename"),
			Epoch:        epoch,
			StepDuration: v.GetDuration("export.step"),
			Header:       v.GetBool("export.header"),
		},
	}
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// confReadJDEorTime reads a key either as a Julian date or as a UTC date time.
func confReadJDEorTime(v *viper.Viper, key string) (time.Time, error) {
	if jde := v.GetFloat64(key); jde != 0 {
		return julian.JDToTime(jde), nil
	}
	dt, err := time.Parse(dateTimeFormat, v.GetString(key))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: could not understand `%s`: %s", ErrConfiguration, key, err)
	}
	return dt, nil
}
