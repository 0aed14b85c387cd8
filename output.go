package post

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// StreamConfig configures the state sink. Out defaults to stdout; CSVDir
// additionally mirrors the stream into a CSV file for offline analysis.
type StreamConfig struct {
	Out      io.Writer
	CSVDir   string
	Filename string
}

// StreamStates consumes the state channel until it is closed, writing one
// line-oriented record per integration step. A "Starting Phase <n>" marker
// precedes each phase's first record. The record fields are
// time, position (3), velocity (3), altitude and propellant mass, printed
// with enough digits for 1e-6 relative round-trips.
func StreamStates(conf StreamConfig, stateChan <-chan MissionState) error {
	out := conf.Out
	if out == nil {
		out = os.Stdout
	}
	w := bufio.NewWriter(out)

	var csvFile *os.File
	var csvW *bufio.Writer
	if conf.CSVDir != "" {
		name := conf.Filename
		if name == "" {
			name = "mission"
		}
		f, err := os.Create(filepath.Join(conf.CSVDir, fmt.Sprintf("traj-%s.csv", name)))
		if err != nil {
			return err
		}
		csvFile = f
		csvW = bufio.NewWriter(f)
		fmt.Fprintf(csvW, "# Creation date (UTC): %s\n", time.Now().UTC())
		fmt.Fprintln(csvW, "phase,time,x,y,z,vx,vy,vz,altitude,propellant_mass,mach,dynamic_pressure,throttle")
	}

	currentPhase := -1
	for state := range stateChan {
		s := state.State
		if state.Phase != currentPhase {
			currentPhase = state.Phase
			if _, err := fmt.Fprintf(w, "Starting Phase %d\n", currentPhase); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "%.9e %.9e %.9e %.9e %.9e %.9e %.9e %.9e %.9e\n",
			s.Time, s.Position[0], s.Position[1], s.Position[2],
			s.Velocity[0], s.Velocity[1], s.Velocity[2],
			s.Altitude, s.PropellantMass)
		if err != nil {
			return err
		}
		if csvW != nil {
			fmt.Fprintf(csvW, "%d,%.9e,%.9e,%.9e,%.9e,%.9e,%.9e,%.9e,%.9e,%.9e,%.6f,%.3f,%.4f\n",
				state.Phase, s.Time, s.Position[0], s.Position[1], s.Position[2],
				s.Velocity[0], s.Velocity[1], s.Velocity[2],
				s.Altitude, s.PropellantMass, s.MachNumber, s.DynamicPressure, s.Throttle)
		}
	}

	if err := w.Flush(); err != nil {
		return err
	}
	if csvW != nil {
		if err := csvW.Flush(); err != nil {
			csvFile.Close()
			return err
		}
		return csvFile.Close()
	}
	return nil
}
