package fractal

import (
	"fmt"
	"sync"
)

// Controller owns the live Config a UI edits. Evaluations never read the live
// value: they work on a Snapshot, so mutations only take effect between frames.
type Controller struct {
	m   sync.RWMutex
	cfg *Config
}

// NewController registers cfg as the live configuration. The caller must not
// mutate cfg directly afterwards.
func NewController(cfg *Config) *Controller {
	return &Controller{cfg: cfg}
}

// Snapshot returns an independent copy of the live configuration.
func (c *Controller) Snapshot() Config {
	c.m.RLock()
	defer c.m.RUnlock()
	return *c.cfg
}

// Update applies fn to the live configuration.
func (c *Controller) Update(fn func(cfg *Config)) {
	c.m.Lock()
	defer c.m.Unlock()
	fn(c.cfg)
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d not in 0..%d", ErrTrapIndex, i, n-1)
	}
	return nil
}

func (c *Controller) PointTrap(i int) (PointTrap, error) {
	if err := checkIndex(i, MaxPointTraps); err != nil {
		return PointTrap{}, err
	}
	c.m.RLock()
	defer c.m.RUnlock()
	return c.cfg.Traps.Points[i], nil
}

func (c *Controller) SetPointTrap(i int, t PointTrap) error {
	if err := checkIndex(i, MaxPointTraps); err != nil {
		return err
	}
	c.m.Lock()
	defer c.m.Unlock()
	c.cfg.Traps.Points[i] = t
	return nil
}

func (c *Controller) SetPointTrapActive(i int, active bool) error {
	if err := checkIndex(i, MaxPointTraps); err != nil {
		return err
	}
	c.m.Lock()
	defer c.m.Unlock()
	c.cfg.Traps.Points[i].Active = active
	return nil
}

// TogglePointTrap flips the active flag of point trap i and returns the new state.
func (c *Controller) TogglePointTrap(i int) (bool, error) {
	if err := checkIndex(i, MaxPointTraps); err != nil {
		return false, err
	}
	c.m.Lock()
	defer c.m.Unlock()
	t := &c.cfg.Traps.Points[i]
	t.Active = !t.Active
	return t.Active, nil
}

func (c *Controller) LineTrap(i int) (LineTrap, error) {
	if err := checkIndex(i, MaxLineTraps); err != nil {
		return LineTrap{}, err
	}
	c.m.RLock()
	defer c.m.RUnlock()
	return c.cfg.Traps.Lines[i], nil
}

func (c *Controller) SetLineTrap(i int, t LineTrap) error {
	if err := checkIndex(i, MaxLineTraps); err != nil {
		return err
	}
	c.m.Lock()
	defer c.m.Unlock()
	c.cfg.Traps.Lines[i] = t
	return nil
}

func (c *Controller) SetLineTrapActive(i int, active bool) error {
	if err := checkIndex(i, MaxLineTraps); err != nil {
		return err
	}
	c.m.Lock()
	defer c.m.Unlock()
	c.cfg.Traps.Lines[i].Active = active
	return nil
}

// ToggleLineTrap flips the active flag of line trap i and returns the new state.
func (c *Controller) ToggleLineTrap(i int) (bool, error) {
	if err := checkIndex(i, MaxLineTraps); err != nil {
		return false, err
	}
	c.m.Lock()
	defer c.m.Unlock()
	t := &c.cfg.Traps.Lines[i]
	t.Active = !t.Active
	return t.Active, nil
}
