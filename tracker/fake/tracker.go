// Package fake is a fake pose Tracker for testing and demos.
package fake

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/vivetools/trackkit/tracker"
)

// Device names matching the common controller/tracker pairing of VR
// tracking runtimes.
const (
	DefaultControllerName = "controller_1"
	DefaultTrackerName    = "tracker_1"
)

// Tracker is an in-memory pose provider. Device samples are either set by
// hand with SetPoseSample or animated along a horizontal circular orbit that
// Update advances using the injected clock.
type Tracker struct {
	mu     sync.RWMutex
	poses  map[string]tracker.PoseSample
	orbits map[string]orbit
	clock  clock.Clock
	start  time.Time
	logger golog.Logger
}

var _ tracker.Tracker = &Tracker{}

type orbit struct {
	center r3.Vector
	radius float64
	period time.Duration
}

// NewTracker returns an empty fake tracker driven by the wall clock.
func NewTracker(logger golog.Logger) *Tracker {
	return NewTrackerWithClock(logger, clock.New())
}

// NewTrackerWithClock returns an empty fake tracker whose orbits advance
// according to the given clock, so tests can step time deterministically.
func NewTrackerWithClock(logger golog.Logger, c clock.Clock) *Tracker {
	return &Tracker{
		poses:  map[string]tracker.PoseSample{},
		orbits: map[string]orbit{},
		clock:  c,
		start:  c.Now(),
		logger: logger,
	}
}

// SetPoseSample sets or replaces the current sample for a device.
func (t *Tracker) SetPoseSample(deviceName string, sample tracker.PoseSample) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.poses[deviceName] = sample
}

// SetOrbit animates a device along a circle of the given radius in the XZ
// plane around center, completing one revolution per period. The device faces
// along its direction of travel. The device has no sample until the next
// Update.
func (t *Tracker) SetOrbit(deviceName string, center r3.Vector, radius float64, period time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.orbits[deviceName] = orbit{center: center, radius: radius, period: period}
}

// RemoveDevice makes a device unavailable until it is set again.
func (t *Tracker) RemoveDevice(deviceName string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.poses, deviceName)
	delete(t.orbits, deviceName)
}

// PoseSample returns the device's sample from the most recent snapshot.
func (t *Tracker) PoseSample(ctx context.Context, deviceName string) (tracker.PoseSample, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	sample, ok := t.poses[deviceName]
	if !ok {
		return tracker.PoseSample{}, tracker.DeviceUnavailableError{Device: deviceName}
	}
	return sample, nil
}

// DeviceNames returns the sorted names of all devices with a current sample.
func (t *Tracker) DeviceNames(ctx context.Context) ([]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.poses))
	for name := range t.poses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Update advances every orbiting device to its position at the current clock
// time. Hand-set devices are left alone.
func (t *Tracker) Update(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	elapsed := t.clock.Now().Sub(t.start)
	for name, o := range t.orbits {
		angle := 2 * math.Pi * float64(elapsed) / float64(o.period)
		t.poses[name] = tracker.PoseSample{
			Position: r3.Vector{
				X: o.center.X + o.radius*math.Cos(angle),
				Y: o.center.Y,
				Z: o.center.Z + o.radius*math.Sin(angle),
			},
			// Heading tangent to the circle: yaw of -angle about the Y axis.
			Orientation: quat.Number{Real: math.Cos(angle / 2), Jmag: -math.Sin(angle / 2)},
		}
	}
	return nil
}

// Close makes all devices unavailable.
func (t *Tracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.poses = map[string]tracker.PoseSample{}
	t.orbits = map[string]orbit{}
	return nil
}
