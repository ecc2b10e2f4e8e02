package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()

// GroundTag marks static level geometry.
type GroundTag struct{}

var GroundTagComponent = NewComponent[GroundTag]()
