package component

// Invulnerable marks an entity as immune to damage. Until is an absolute
// world time; zero means indefinite immunity until explicitly removed.
type Invulnerable struct {
	Until float64
}

var InvulnerableComponent = NewComponent[Invulnerable]()
