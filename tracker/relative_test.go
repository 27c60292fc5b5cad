package tracker_test

import (
	"context"
	"math"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/vivetools/trackkit/spatialmath"
	"github.com/vivetools/trackkit/tracker"
	"github.com/vivetools/trackkit/tracker/fake"
)

var identity = spatialmath.NewQuaternion(1, 0, 0, 0)

func newTrackerWithPoses(t *testing.T, poses map[string]tracker.PoseSample) *fake.Tracker {
	t.Helper()
	vt := fake.NewTracker(golog.NewTestLogger(t))
	for name, sample := range poses {
		vt.SetPoseSample(name, sample)
	}
	return vt
}

func TestRelativePositionScenarios(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		name      string
		primary   tracker.PoseSample
		secondary tracker.PoseSample
		expected  r3.Vector
	}{
		{
			"coincident frames",
			tracker.PoseSample{Position: r3.Vector{X: 1, Y: 2, Z: 3}, Orientation: identity},
			tracker.PoseSample{Position: r3.Vector{X: 1, Y: 2, Z: 3}, Orientation: identity},
			r3.Vector{},
		},
		{
			"pure translation",
			tracker.PoseSample{Position: r3.Vector{X: 1}, Orientation: identity},
			tracker.PoseSample{Orientation: identity},
			r3.Vector{X: 1},
		},
		{
			"secondary rotated 90 degrees about Z",
			tracker.PoseSample{Position: r3.Vector{X: 1}, Orientation: identity},
			tracker.PoseSample{Orientation: spatialmath.NewQuaternion(math.Sqrt2/2, 0, 0, math.Sqrt2/2)},
			r3.Vector{Y: -1},
		},
		{
			"offset and rotated secondary",
			tracker.PoseSample{Position: r3.Vector{X: 2, Y: 1}, Orientation: identity},
			tracker.PoseSample{Position: r3.Vector{X: 1, Y: 1}, Orientation: spatialmath.NewQuaternion(math.Sqrt2/2, 0, 0, math.Sqrt2/2)},
			r3.Vector{Y: -1},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			vt := newTrackerWithPoses(t, map[string]tracker.PoseSample{
				"controller_1": tc.primary,
				"tracker_1":    tc.secondary,
			})
			position, err := tracker.RelativePosition(ctx, vt, "controller_1", "tracker_1")
			test.That(t, err, test.ShouldBeNil)
			test.That(t, position.X, test.ShouldAlmostEqual, tc.expected.X, 1e-9)
			test.That(t, position.Y, test.ShouldAlmostEqual, tc.expected.Y, 1e-9)
			test.That(t, position.Z, test.ShouldAlmostEqual, tc.expected.Z, 1e-9)

			distance, err := tracker.Distance(ctx, vt, "controller_1", "tracker_1")
			test.That(t, err, test.ShouldBeNil)
			test.That(t, distance, test.ShouldAlmostEqual, tc.expected.Norm(), 1e-9)
		})
	}
}

func TestRelativePositionSelf(t *testing.T) {
	ctx := context.Background()
	vt := newTrackerWithPoses(t, map[string]tracker.PoseSample{
		"tracker_1": {
			Position:    r3.Vector{X: -4, Y: 0.5, Z: 2},
			Orientation: spatialmath.Normalize(spatialmath.NewQuaternion(1, 2, 3, 4)),
		},
	})
	position, err := tracker.RelativePosition(ctx, vt, "tracker_1", "tracker_1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, position.Norm(), test.ShouldAlmostEqual, 0, 1e-9)

	distance, err := tracker.Distance(ctx, vt, "tracker_1", "tracker_1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, distance, test.ShouldAlmostEqual, 0, 1e-9)
}

func TestRelativePose(t *testing.T) {
	// primary sits one meter in front of a secondary that is turned 90
	// degrees about Z; the relative orientation must be the opposite turn.
	ctx := context.Background()
	quarterTurn := spatialmath.NewQuaternion(math.Sqrt2/2, 0, 0, math.Sqrt2/2)
	vt := newTrackerWithPoses(t, map[string]tracker.PoseSample{
		"controller_1": {Position: r3.Vector{X: 1}, Orientation: identity},
		"tracker_1":    {Orientation: quarterTurn},
	})
	relative, err := tracker.RelativePose(ctx, vt, "controller_1", "tracker_1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.QuaternionAlmostEqual(
		relative.Quaternion(),
		spatialmath.NewQuaternion(math.Sqrt2/2, 0, 0, -math.Sqrt2/2),
		1e-9,
	), test.ShouldBeTrue)
	test.That(t, relative.Point().Y, test.ShouldAlmostEqual, -1, 1e-9)
}

func TestRelativePositionDeviceUnavailable(t *testing.T) {
	ctx := context.Background()
	vt := newTrackerWithPoses(t, map[string]tracker.PoseSample{
		"controller_1": {Position: r3.Vector{X: 1}, Orientation: identity},
	})

	_, err := tracker.RelativePosition(ctx, vt, "controller_1", "tracker_1")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, tracker.IsDeviceUnavailable(err), test.ShouldBeTrue)
	var unavailable tracker.DeviceUnavailableError
	test.That(t, errors.As(err, &unavailable), test.ShouldBeTrue)
	test.That(t, unavailable.Device, test.ShouldEqual, "tracker_1")

	// failing the primary lookup fails the whole operation too
	_, err = tracker.RelativePosition(ctx, vt, "headset_1", "controller_1")
	test.That(t, tracker.IsDeviceUnavailable(err), test.ShouldBeTrue)

	_, err = tracker.Distance(ctx, vt, "controller_1", "tracker_1")
	test.That(t, tracker.IsDeviceUnavailable(err), test.ShouldBeTrue)
}

func TestRelativePositionDegenerateOrientation(t *testing.T) {
	ctx := context.Background()
	vt := newTrackerWithPoses(t, map[string]tracker.PoseSample{
		"controller_1": {Position: r3.Vector{X: 1}}, // zero-norm orientation
		"tracker_1":    {Orientation: identity},
	})

	_, err := tracker.RelativePosition(ctx, vt, "controller_1", "tracker_1")
	test.That(t, err, test.ShouldNotBeNil)
	var degenerate tracker.DegenerateOrientationError
	test.That(t, errors.As(err, &degenerate), test.ShouldBeTrue)
	test.That(t, tracker.IsDeviceUnavailable(err), test.ShouldBeFalse)
}

func TestPoseSampleValidate(t *testing.T) {
	sample := tracker.PoseSample{Orientation: identity}
	test.That(t, sample.Validate(), test.ShouldBeNil)

	degenerate := tracker.PoseSample{}
	test.That(t, degenerate.Validate(), test.ShouldNotBeNil)
}
