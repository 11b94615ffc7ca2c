package engine

// Dispatcher routes raw command text to a Resolver.
type Dispatcher struct {
	resolver *Resolver
}

// NewDispatcher creates a dispatcher forwarding to r.
func NewDispatcher(r *Resolver) *Dispatcher {
	return &Dispatcher{resolver: r}
}

// Dispatch parses raw and applies it to robot. The returned action is the
// effective one, which may differ from the request. Unknown tokens yield
// ErrInvalidCommand and leave robot and grid untouched.
func (d *Dispatcher) Dispatch(robot *Robot, raw string) (Action, error) {
	a, err := ParseAction(raw)
	if err != nil {
		return "", err
	}
	return d.resolver.Resolve(robot, a)
}
