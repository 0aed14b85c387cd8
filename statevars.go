package post

import "fmt"

// StateVariable names one scalar of the State record. The set is closed:
// table axes, steering polynomials and end criteria may only reference the
// tags below, and anything else fails configuration validation.
type StateVariable string

const (
	VarTime           StateVariable = "time"
	VarTimeSinceEvent StateVariable = "time_since_event"

	VarPosition1    StateVariable = "position1"
	VarPosition2    StateVariable = "position2"
	VarPosition3    StateVariable = "position3"
	VarPositionNorm StateVariable = "position_norm"

	VarPositionPlanet1 StateVariable = "position_planet1"
	VarPositionPlanet2 StateVariable = "position_planet2"
	VarPositionPlanet3 StateVariable = "position_planet3"

	VarAltitude       StateVariable = "altitude"
	VarAltitudeGeopot StateVariable = "altitude_geopotential"

	VarVelocity1    StateVariable = "velocity1"
	VarVelocity2    StateVariable = "velocity2"
	VarVelocity3    StateVariable = "velocity3"
	VarVelocityNorm StateVariable = "velocity_norm"

	VarVelocityPlanet1    StateVariable = "velocity_planet1"
	VarVelocityPlanet2    StateVariable = "velocity_planet2"
	VarVelocityPlanet3    StateVariable = "velocity_planet3"
	VarVelocityPlanetNorm StateVariable = "velocity_planet_norm"

	VarVelocityAtmos1    StateVariable = "velocity_atmosphere1"
	VarVelocityAtmos2    StateVariable = "velocity_atmosphere2"
	VarVelocityAtmos3    StateVariable = "velocity_atmosphere3"
	VarVelocityAtmosNorm StateVariable = "velocity_atmosphere_norm"

	VarGravityAcc1    StateVariable = "gravity_acceleration1"
	VarGravityAcc2    StateVariable = "gravity_acceleration2"
	VarGravityAcc3    StateVariable = "gravity_acceleration3"
	VarGravityAccNorm StateVariable = "gravity_acceleration_norm"

	VarThrustForce1    StateVariable = "thrust_force_body1"
	VarThrustForce2    StateVariable = "thrust_force_body2"
	VarThrustForce3    StateVariable = "thrust_force_body3"
	VarThrustForceNorm StateVariable = "thrust_force_body_norm"

	VarAeroForce1    StateVariable = "aero_force_body1"
	VarAeroForce2    StateVariable = "aero_force_body2"
	VarAeroForce3    StateVariable = "aero_force_body3"
	VarAeroForceNorm StateVariable = "aero_force_body_norm"

	VarVehicleAcc1    StateVariable = "vehicle_acceleration_body1"
	VarVehicleAcc2    StateVariable = "vehicle_acceleration_body2"
	VarVehicleAcc3    StateVariable = "vehicle_acceleration_body3"
	VarVehicleAccNorm StateVariable = "vehicle_acceleration_body_norm"

	VarMass           StateVariable = "mass"
	VarPropellantMass StateVariable = "propellant_mass"
	VarMassflow       StateVariable = "mass_flow"

	VarTemperature     StateVariable = "temperature"
	VarPressure        StateVariable = "pressure"
	VarDensity         StateVariable = "density"
	VarMachNumber      StateVariable = "mach_number"
	VarDynamicPressure StateVariable = "dynamic_pressure"

	VarAlpha      StateVariable = "alpha"
	VarEulerRoll  StateVariable = "euler_angles_roll"
	VarEulerYaw   StateVariable = "euler_angles_yaw"
	VarEulerPitch StateVariable = "euler_angles_pitch"
	VarThrottle   StateVariable = "throttle"
)

// Value projects the named scalar out of the state. During the staged
// assembly, fields of a later stage are still zero, so a key referencing
// ahead silently reads zero.
func (v StateVariable) Value(s *State) float64 {
	switch v {
	case VarTime:
		return s.Time
	case VarTimeSinceEvent:
		return s.TimeSinceEvent
	case VarPosition1:
		return s.Position[0]
	case VarPosition2:
		return s.Position[1]
	case VarPosition3:
		return s.Position[2]
	case VarPositionNorm:
		return norm(s.Position)
	case VarPositionPlanet1:
		return s.PositionPlanet[0]
	case VarPositionPlanet2:
		return s.PositionPlanet[1]
	case VarPositionPlanet3:
		return s.PositionPlanet[2]
	case VarAltitude:
		return s.Altitude
	case VarAltitudeGeopot:
		return s.AltitudeGeopot
	case VarVelocity1:
		return s.Velocity[0]
	case VarVelocity2:
		return s.Velocity[1]
	case VarVelocity3:
		return s.Velocity[2]
	case VarVelocityNorm:
		return norm(s.Velocity)
	case VarVelocityPlanet1:
		return s.VelocityPlanet[0]
	case VarVelocityPlanet2:
		return s.VelocityPlanet[1]
	case VarVelocityPlanet3:
		return s.VelocityPlanet[2]
	case VarVelocityPlanetNorm:
		return norm(s.VelocityPlanet)
	case VarVelocityAtmos1:
		return s.VelocityAtmosphere[0]
	case VarVelocityAtmos2:
		return s.VelocityAtmosphere[1]
	case VarVelocityAtmos3:
		return s.VelocityAtmosphere[2]
	case VarVelocityAtmosNorm:
		return norm(s.VelocityAtmosphere)
	case VarGravityAcc1:
		return s.GravityAcceleration[0]
	case VarGravityAcc2:
		return s.GravityAcceleration[1]
	case VarGravityAcc3:
		return s.GravityAcceleration[2]
	case VarGravityAccNorm:
		return norm(s.GravityAcceleration)
	case VarThrustForce1:
		return s.ThrustForceBody[0]
	case VarThrustForce2:
		return s.ThrustForceBody[1]
	case VarThrustForce3:
		return s.ThrustForceBody[2]
	case VarThrustForceNorm:
		return norm(s.ThrustForceBody)
	case VarAeroForce1:
		return s.AeroForceBody[0]
	case VarAeroForce2:
		return s.AeroForceBody[1]
	case VarAeroForce3:
		return s.AeroForceBody[2]
	case VarAeroForceNorm:
		return norm(s.AeroForceBody)
	case VarVehicleAcc1:
		return s.VehicleAcceleration[0]
	case VarVehicleAcc2:
		return s.VehicleAcceleration[1]
	case VarVehicleAcc3:
		return s.VehicleAcceleration[2]
	case VarVehicleAccNorm:
		return norm(s.VehicleAcceleration)
	case VarMass:
		return s.Mass
	case VarPropellantMass:
		return s.PropellantMass
	case VarMassflow:
		return s.Massflow
	case VarTemperature:
		return s.Temperature
	case VarPressure:
		return s.Pressure
	case VarDensity:
		return s.Density
	case VarMachNumber:
		return s.MachNumber
	case VarDynamicPressure:
		return s.DynamicPressure
	case VarAlpha:
		return s.Alpha
	case VarEulerRoll:
		return s.EulerRoll
	case VarEulerYaw:
		return s.EulerYaw
	case VarEulerPitch:
		return s.EulerPitch
	case VarThrottle:
		return s.Throttle
	}
	panic(fmt.Errorf("cannot read unknown state variable %q", string(v)))
}

// Validate returns a ConfigError if the tag is not part of the closed set.
func (v StateVariable) Validate() error {
	for _, known := range allStateVariables {
		if v == known {
			return nil
		}
	}
	return newConfigError("unknown state variable %q", string(v))
}

var allStateVariables = []StateVariable{
	VarTime, VarTimeSinceEvent,
	VarPosition1, VarPosition2, VarPosition3, VarPositionNorm,
	VarPositionPlanet1, VarPositionPlanet2, VarPositionPlanet3,
	VarAltitude, VarAltitudeGeopot,
	VarVelocity1, VarVelocity2, VarVelocity3, VarVelocityNorm,
	VarVelocityPlanet1, VarVelocityPlanet2, VarVelocityPlanet3, VarVelocityPlanetNorm,
	VarVelocityAtmos1, VarVelocityAtmos2, VarVelocityAtmos3, VarVelocityAtmosNorm,
	VarGravityAcc1, VarGravityAcc2, VarGravityAcc3, VarGravityAccNorm,
	VarThrustForce1, VarThrustForce2, VarThrustForce3, VarThrustForceNorm,
	VarAeroForce1, VarAeroForce2, VarAeroForce3, VarAeroForceNorm,
	VarVehicleAcc1, VarVehicleAcc2, VarVehicleAcc3, VarVehicleAccNorm,
	VarMass, VarPropellantMass, VarMassflow,
	VarTemperature, VarPressure, VarDensity, VarMachNumber, VarDynamicPressure,
	VarAlpha, VarEulerRoll, VarEulerYaw, VarEulerPitch, VarThrottle,
}
