package tracker

import (
	"context"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/vivetools/trackkit/spatialmath"
)

// RelativePose returns the rigid transform mapping the primary device's local
// frame into the secondary device's local frame, computed from fresh provider
// samples on every call. If either device is unavailable the whole operation
// fails; there is no partial result and no fallback to a previous sample.
func RelativePose(
	ctx context.Context,
	provider PoseProvider,
	primaryName, secondaryName string,
) (*spatialmath.RigidTransform, error) {
	primary, err := poseSampleChecked(ctx, provider, primaryName)
	if err != nil {
		return nil, err
	}
	secondary, err := poseSampleChecked(ctx, provider, secondaryName)
	if err != nil {
		return nil, err
	}

	worldFromPrimary := spatialmath.NewRigidTransform(primary.Position, primary.Orientation)
	worldFromSecondary := spatialmath.NewRigidTransform(secondary.Position, secondary.Orientation)

	// secondary-local <- world <- primary-local
	return spatialmath.Compose(spatialmath.Invert(worldFromSecondary), worldFromPrimary), nil
}

// RelativePosition returns the position of the primary device expressed in
// the secondary device's local frame.
func RelativePosition(
	ctx context.Context,
	provider PoseProvider,
	primaryName, secondaryName string,
) (r3.Vector, error) {
	relative, err := RelativePose(ctx, provider, primaryName, secondaryName)
	if err != nil {
		return r3.Vector{}, err
	}
	return relative.Point(), nil
}

// Distance returns the Euclidean distance in meters between the two devices.
func Distance(
	ctx context.Context,
	provider PoseProvider,
	primaryName, secondaryName string,
) (float64, error) {
	position, err := RelativePosition(ctx, provider, primaryName, secondaryName)
	if err != nil {
		return 0, err
	}
	return position.Norm(), nil
}

func poseSampleChecked(ctx context.Context, provider PoseProvider, deviceName string) (PoseSample, error) {
	sample, err := provider.PoseSample(ctx, deviceName)
	if err != nil {
		return PoseSample{}, errors.Wrapf(err, "getting pose of %q", deviceName)
	}
	if err := sample.Validate(); err != nil {
		return PoseSample{}, errors.Wrapf(err, "pose sample for %q", deviceName)
	}
	return sample, nil
}
