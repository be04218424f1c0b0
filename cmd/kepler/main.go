package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ChristopherRabotin/hohmann"
	kitlog "github.com/go-kit/kit/log"
)

// Steps a body along the configured fixed ellipse (Mercury by default) and
// prints its anomalies and state, one line per step.

var (
	configPath string
	modeName   string
	steps      int
	verify     bool
)

func init() {
	flag.StringVar(&configPath, "config", "", "TOML configuration file (defaults to $"+hohmann.ConfigEnv+")")
	flag.StringVar(&modeName, "mode", "", "anomaly mode: time-accurate, illustrative or eccentric-linear (defaults to the configuration)")
	flag.IntVar(&steps, "steps", 0, "number of steps to print (defaults to one revolution)")
	flag.BoolVar(&verify, "verify", false, "cross check every step against an RK4 integration of the two-body problem")
}

func main() {
	flag.Parse()
	conf, err := hohmann.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("configuration: %s", err)
	}
	mode := conf.Mode
	if modeName != "" {
		if mode, err = hohmann.ParseAnomalyMode(modeName); err != nil {
			log.Fatal(err)
		}
	}
	logger := kitlog.With(kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr)), "subsys", "kepler")

	c, err := hohmann.NewConic(conf.Ellipse.SemiMajorAxis, conf.Ellipse.Eccentricity, conf.Body.GM())
	if err != nil {
		log.Fatal(err)
	}
	el, err := hohmann.NewEllipse(c, conf.Ellipse.Steps, mode)
	if err != nil {
		log.Fatal(err)
	}
	if steps <= 0 {
		steps = conf.Ellipse.Steps
	}
	if verify && mode != hohmann.TimeAccurate {
		logger.Log("level", "warning", "verify", "steps are not evenly spaced in time", "mode", mode)
	}
	logger.Log("level", "info", "conic", c, "mode", mode, "period", c.Period(), "step", el.StepDuration())

	fmt.Println("step,M,E,nu,r,x,y,vx,vy,speed")
	var (
		propagated hohmann.StateVector
		worst      float64
	)
	for i := 0; i < steps; i++ {
		s, err := el.Tick()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%d,%.6f,%.6f,%.6f,%.6e,%.6e,%.6e,%.6e,%.6e,%.6e\n", s.Step,
			hohmann.Rad2deg(s.Anomalies.Mean), hohmann.Rad2deg(s.Anomalies.Eccentric), hohmann.Rad2deg(s.Anomalies.True),
			s.Radius, s.Position.X, s.Position.Y, s.Velocity.X, s.Velocity.Y, s.Speed)
		if !verify {
			continue
		}
		if i == 0 {
			propagated = hohmann.StateVector{R: s.Position, V: s.Velocity}
			continue
		}
		if propagated, err = hohmann.PropagateTwoBody(conf.Body, propagated, el.StepDuration().Seconds(), 100); err != nil {
			log.Fatal(err)
		}
		if δ := propagated.R.Add(s.Position.Scale(-1)).Norm() / s.Radius; δ > worst {
			worst = δ
		}
	}
	if verify {
		logger.Log("level", "notice", "verify", "done", "max relative position error", worst)
	}
}
