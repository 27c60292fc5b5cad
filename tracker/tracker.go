// Package tracker defines the interfaces of pose providers, which report
// world-frame poses of tracked rigid bodies, and computes the pose of one
// tracked body relative to another.
package tracker

import (
	"context"
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// A PoseSample is one world-frame observation of a tracked device: position
// in meters plus a unit quaternion orientation (w, x, y, z). Samples are
// value types and are never mutated after being read from a provider.
type PoseSample struct {
	Position    r3.Vector
	Orientation quat.Number
}

// Orientations with a norm this small carry no directional information and
// cannot be encoded as a rotation.
const minOrientationNorm = 1e-8

// Validate returns an error if the sample cannot be encoded as a rigid
// transform because its orientation is degenerate.
func (s PoseSample) Validate() error {
	if norm := quat.Abs(s.Orientation); norm < minOrientationNorm {
		return DegenerateOrientationError{Norm: norm}
	}
	return nil
}

// A PoseProvider reports the current world-frame pose sample for a named
// device. A device that is not paired, out of the tracking volume, or not yet
// detected yields a DeviceUnavailableError; providers handle their own
// snapshot caching and refresh.
type PoseProvider interface {
	PoseSample(ctx context.Context, deviceName string) (PoseSample, error)
}

// A Tracker is a PoseProvider that owns a refreshable snapshot of multiple
// devices, in the manner of a VR tracking runtime.
type Tracker interface {
	PoseProvider

	// DeviceNames returns the names of all currently detected devices.
	DeviceNames(ctx context.Context) ([]string, error)

	// Update advances the provider's internal snapshot; PoseSample reads
	// from the most recent snapshot.
	Update(ctx context.Context) error

	Close() error
}

// DeviceUnavailableError is returned when a device has no current pose
// sample. It is expected during normal operation; callers should retry on
// their next polling cycle rather than treat it as terminal.
type DeviceUnavailableError struct {
	Device string
}

func (e DeviceUnavailableError) Error() string {
	return fmt.Sprintf("device %q has no current pose sample", e.Device)
}

// IsDeviceUnavailable reports whether err is, or wraps, a
// DeviceUnavailableError.
func IsDeviceUnavailable(err error) bool {
	var unavailable DeviceUnavailableError
	return errors.As(err, &unavailable)
}

// DegenerateOrientationError is returned when a pose sample's orientation has
// near-zero norm and so describes no rotation at all.
type DegenerateOrientationError struct {
	Norm float64
}

func (e DegenerateOrientationError) Error() string {
	return fmt.Sprintf("orientation quaternion norm %g is too small to encode a rotation", e.Norm)
}
