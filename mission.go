package post

import (
	"math"
	"sync"

	kitlog "github.com/go-kit/kit/log"
)

/* Handles the multi-phase trajectory propagation. */

// MissionState is one propagated state tagged with its phase index.
type MissionState struct {
	Phase int
	State State
}

// Mission drives the ordered phase overlays: merge, initialize, integrate,
// carry the terminal state into the next phase.
type Mission struct {
	overlays []PhaseOverlay
	settings Settings
	logger   kitlog.Logger

	stopChan chan bool
	wg       sync.WaitGroup
}

// NewMission returns a mission for the given overlays. The logger may be nil.
func NewMission(overlays []PhaseOverlay, settings Settings, logger kitlog.Logger) *Mission {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Mission{
		overlays: overlays,
		settings: settings,
		logger:   logger,
		stopChan: make(chan bool, 1),
	}
}

// StopPropagation is used to stop the propagation before it is completed.
func (m *Mission) StopPropagation() {
	m.stopChan <- true
}

func (m *Mission) cancelled() bool {
	select {
	case <-m.stopChan:
		return true
	default:
		return false
	}
}

// Propagate runs all phases, streaming every state to the sink. It returns
// the terminal state of the last phase.
func (m *Mission) Propagate(conf StreamConfig) (State, error) {
	histChan := make(chan MissionState, 1000)
	m.wg.Add(1)
	streamErr := make(chan error, 1)
	go func() {
		defer m.wg.Done()
		streamErr <- StreamStates(conf, histChan)
	}()

	state, err := m.propagate(histChan)
	close(histChan)
	m.wg.Wait()
	if err != nil {
		return state, err
	}
	return state, <-streamErr
}

func (m *Mission) propagate(histChan chan<- MissionState) (State, error) {
	effective := defaultPhase()
	var state State
	var il = effective.inertialToLaunch

	for i, overlay := range m.overlays {
		propellantReset, err := effective.mergeInto(overlay)
		if err != nil {
			return state, err
		}

		if i == 0 {
			if overlay.Init == nil {
				return state, newConfigError("phase 0 needs an init block")
			}
			if effective.Stepsize == 0 {
				return state, newConfigError("phase 0 needs a stepsize")
			}
			if effective.EndKey == "" {
				return state, newConfigError("phase 0 needs an end criterion")
			}
			init := overlay.Init
			position, velocity, launchFrame := effective.Planet.GeodeticToInertial(
				Deg2rad(init.Latitude), Deg2rad(init.Longitude), init.Altitude, Deg2rad(init.Azimuth))
			il = launchFrame
			state = newState()
			copy(state.Position, position)
			copy(state.Velocity, velocity)
		}
		if propellantReset != nil {
			state.PropellantMass = *propellantReset
		}

		phase := effective // value copy: tables, engines and steering go with it
		phase.Index = i
		phase.inertialToLaunch = il
		phase.MaxSteps = m.settings.MaxSteps
		phase.EventTolerance = m.settings.EventTolerance
		phase.derivErr = nil

		// Keep the orientation continuous across the boundary.
		phase.Steering.Anchor(state.EulerRoll/deg2rad, state.EulerYaw/deg2rad, state.EulerPitch/deg2rad)
		effective.Steering = phase.Steering

		m.logger.Log("level", "info", "subsys", "mission", "phase", i,
			"t", state.Time, "propellant(kg)", state.PropellantMass,
			"end", string(phase.EndKey), "target", phase.EndValue)

		emit := func(s State) {
			histChan <- MissionState{i, s}
		}
		terminal, err := phase.run(state, emit, m.cancelled)
		if err != nil {
			if _, ok := err.(Cancelled); ok {
				m.logger.Log("level", "notice", "subsys", "mission", "phase", i, "status", "stopped")
			} else {
				m.logger.Log("level", "critical", "subsys", "mission", "phase", i, "err", err.Error())
			}
			return terminal, err
		}
		m.logger.Log("level", "notice", "subsys", "mission", "phase", i, "status", "finished",
			"t", terminal.Time, "altitude(m)", terminal.Altitude,
			"velocity(m/s)", norm(terminal.Velocity), "propellant(kg)", terminal.PropellantMass)
		state = terminal
	}

	if state.PropellantMass < 0 || math.IsNaN(state.PropellantMass) {
		m.logger.Log("level", "critical", "subsys", "prop", "propellant(kg)", state.PropellantMass)
	}
	return state, nil
}
