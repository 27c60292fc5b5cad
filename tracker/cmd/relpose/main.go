// Package main contains a command to continuously print the position of one
// tracked device relative to another.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"github.com/vivetools/trackkit/spatialmath"
	"github.com/vivetools/trackkit/tracker"
	"github.com/vivetools/trackkit/tracker/fake"
)

var logger = golog.NewDevelopmentLogger("relpose")

func main() {
	utils.ContextualMainQuit(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	Primary        string `flag:"primary,default=controller_1,usage=device whose position is reported"`
	Secondary      string `flag:"secondary,default=tracker_1,usage=device whose local frame the position is expressed in"`
	IntervalMillis int    `flag:"interval-ms,default=100,usage=poll interval in milliseconds"`
	Verbose        bool   `flag:"v,usage=verbose mode"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) (err error) {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}
	if !argsParsed.Verbose {
		logger = golog.NewLogger("relpose")
	}

	// Until a real tracking runtime binding exists, drive the demo with a
	// fake tracker: the secondary device sits at the origin while the
	// primary orbits it.
	vt := fake.NewTracker(logger)
	vt.SetPoseSample(argsParsed.Secondary, tracker.PoseSample{
		Orientation: spatialmath.NewQuaternion(1, 0, 0, 0),
	})
	vt.SetOrbit(argsParsed.Primary, r3.Vector{}, 0.5, 8*time.Second)
	defer func() {
		err = multierr.Combine(err, vt.Close())
	}()

	if err := vt.Update(ctx); err != nil {
		return err
	}
	names, err := vt.DeviceNames(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return errors.New("no devices detected; check that devices are connected and paired")
	}
	logger.Infow("detected devices", "devices", names)
	for _, name := range []string{argsParsed.Primary, argsParsed.Secondary} {
		if _, err := vt.PoseSample(ctx, name); err != nil {
			return errors.Wrap(err, "required device not detected")
		}
	}

	return pollRelativePose(ctx, vt, argsParsed, logger)
}

func pollRelativePose(ctx context.Context, vt tracker.Tracker, args Arguments, logger golog.Logger) error {
	ticker := time.NewTicker(time.Duration(args.IntervalMillis) * time.Millisecond)
	defer ticker.Stop()
	var once bool
	for {
		if !once {
			once = true
			utils.ContextMainReadyFunc(ctx)()
		}
		if !utils.SelectContextOrWaitChan(ctx, ticker.C) {
			return ctx.Err()
		}

		if err := vt.Update(ctx); err != nil {
			return err
		}
		position, err := tracker.RelativePosition(ctx, vt, args.Primary, args.Secondary)
		if err != nil {
			if tracker.IsDeviceUnavailable(err) {
				logger.Debugw("device not currently tracked", "error", err)
				continue
			}
			return err
		}
		fmt.Printf("\r%s position relative to %s: X=%.3fm, Y=%.3fm, Z=%.3fm | Distance=%.3fm   ",
			args.Primary, args.Secondary, position.X, position.Y, position.Z, position.Norm())
	}
}
