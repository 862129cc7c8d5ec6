package application

// Actor identifies who invoked a workflow, passed explicitly at the
// boundary rather than read from ambient state
type Actor struct {
	ID   string `json:"id"`
	Role string `json:"role,omitempty"`
}

// SystemActor is the default identity when a caller supplies none
var SystemActor = Actor{ID: "system", Role: "system"}

// OrSystem returns the actor, falling back to SystemActor when empty
func (a Actor) OrSystem() Actor {
	if a.ID == "" {
		return SystemActor
	}
	return a
}
