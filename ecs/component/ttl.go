package component

// TTL destroys the entity once the world clock reaches At.
type TTL struct {
	At float64
}

var TTLComponent = NewComponent[TTL]()
