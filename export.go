package hohmann

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// ExportConfig configures the CSV export of samples.
type ExportConfig struct {
	Filename     string
	Epoch        time.Time     // date of step zero
	StepDuration time.Duration // time represented by one step
	Header       bool
}

// csvHeader lists the exported columns. Angles are not exported; distances
// are in meters and speeds in meters per second.
var csvHeader = []string{"jd", "step", "phase", "x", "y", "vx", "vy", "speed", "dv", "radius"}

// DateAt returns the date of a given step.
func (c ExportConfig) DateAt(step uint64) time.Time {
	return c.Epoch.Add(time.Duration(step) * c.StepDuration)
}

// Create creates the CSV file of this export in the provided directory.
func (c ExportConfig) Create(dir string) (*os.File, error) {
	if c.Filename == "" {
		return nil, fmt.Errorf("%w: export filename is empty", ErrConfiguration)
	}
	return os.Create(filepath.Join(dir, fmt.Sprintf("samples-%s.csv", c.Filename)))
}

// StreamSamples writes the samples of the channel to w as CSV, until the channel
// is closed. On a write error, the rest of the channel is drained so that the
// producer never blocks.
func StreamSamples(w io.Writer, conf ExportConfig, samples <-chan Sample) (err error) {
	defer func() {
		if err != nil {
			for range samples {
			}
		}
	}()
	cw := csv.NewWriter(w)
	if conf.Header {
		if err = cw.Write(csvHeader); err != nil {
			return err
		}
	}
	ff := func(f float64) string {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	for s := range samples {
		dv := ""
		if s.Burning() {
			dv = ff(*s.ActiveΔv)
		}
		record := []string{
			strconv.FormatFloat(julian.TimeToJD(conf.DateAt(s.Step)), 'f', 6, 64),
			strconv.FormatUint(s.Step, 10),
			s.Phase.String(),
			ff(s.Position.X), ff(s.Position.Y),
			ff(s.Velocity.X), ff(s.Velocity.Y),
			ff(s.Speed), dv, ff(s.OrbitRadius),
		}
		if err = cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
