package menu

import (
	"context"
	"fmt"

	"codeberg.org/mutker/hwdiag/internal/errors"
)

func (s *Shell) cpu(ctx context.Context) error {
	return s.show(func() error {
		info, err := s.probe.CPU(ctx)
		if err != nil {
			return s.notice(err)
		}
		return s.r.CPU(info)
	})
}

func (s *Shell) memory(ctx context.Context) error {
	return s.show(func() error {
		m, err := s.probe.Memory(ctx)
		if err != nil {
			return s.notice(err)
		}
		return s.r.Memory(m)
	})
}

func (s *Shell) disks(ctx context.Context) error {
	return s.show(func() error {
		fs, err := s.probe.Filesystems(ctx)
		if err != nil {
			return s.notice(err)
		}
		return s.r.Filesystems(fs)
	})
}

func (s *Shell) smart(ctx context.Context) error {
	return s.show(func() error {
		if err := s.probe.SMARTAvailable(); err != nil {
			return s.notice(err)
		}

		devs, err := s.probe.SMARTDevices(ctx)
		if err != nil {
			return s.notice(err)
		}
		if err := s.r.SMARTDevices(devs); err != nil {
			return err
		}

		n, err := s.choose(fmt.Sprintf("\nSelect a disk (1-%d): ", len(devs)), 1, len(devs))
		if errors.HasCode(err, errors.ErrInvalidSelection) {
			return s.notice(err)
		}
		if err != nil {
			return err
		}

		report, err := s.probe.SMART(ctx, devs[n-1])
		if err != nil {
			return s.notice(err)
		}
		return s.r.SMART(report)
	})
}

func (s *Shell) battery(ctx context.Context) error {
	return s.show(func() error {
		b, err := s.probe.Battery(ctx)
		if err != nil {
			return s.notice(err)
		}
		return s.r.Battery(b)
	})
}

// temperature runs the monitor in the foreground. Stopping it returns
// to the temperature menu.
func (s *Shell) temperature(ctx context.Context) error {
	if s.monitor == nil {
		return nil
	}
	if err := s.monitor(ctx); err != nil {
		return s.show(func() error { return s.notice(err) })
	}

	return nil
}
