package transformable

// blendable is a channel value: a location/scale vector or a rotator.
type blendable[T any] interface {
	Lerp(to T, alpha float64) T
	Add(o T) T
	IsZero() bool
}

// ChannelState is a read-only view of one blend channel.
type ChannelState[T any] struct {
	Old       T
	Actual    T
	New       T
	Modifying bool
	Timer     float64
}

// channel blends actual from old to next over a fixed duration.
// actual == lerp(old, next, clamp(timer/duration, 0, 1)) at all times.
type channel[T blendable[T]] struct {
	initial   T
	old       T
	actual    T
	next      T
	modifying bool
	timer     float64
}

func newChannel[T blendable[T]](initial T) channel[T] {
	c := channel[T]{initial: initial}
	c.setup()
	return c
}

// setup restores the configured initial value. A non-zero initial value
// starts out modifying so the first tick settles it.
func (c *channel[T]) setup() {
	c.old, c.actual, c.next = c.initial, c.initial, c.initial
	c.modifying = !c.initial.IsZero()
}

// tick advances the timer and re-blends. Zero duration snaps immediately.
func (c *channel[T]) tick(dt, duration float64) {
	if !c.modifying {
		return
	}
	c.timer += dt
	if c.timer >= duration || duration <= 0 {
		c.apply(1)
		c.modifying = false
		c.old = c.next
		return
	}
	c.apply(c.timer / duration)
}

func (c *channel[T]) apply(alpha float64) {
	c.actual = c.old.Lerp(c.next, alpha)
}

// rebase makes the current blended value the new starting point when a
// blend is in flight, so re-triggering does not jump.
func (c *channel[T]) rebase() {
	if c.modifying {
		c.old = c.actual
	}
}

func (c *channel[T]) restart() {
	c.timer = 0
	c.modifying = true
}

func (c *channel[T]) state() ChannelState[T] {
	return ChannelState[T]{
		Old:       c.old,
		Actual:    c.actual,
		New:       c.next,
		Modifying: c.modifying,
		Timer:     c.timer,
	}
}
