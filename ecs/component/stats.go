package component

import "github.com/milk9111/hollowblade/stat"

// Stats is the entity stat sheet. Derived combat values are computed from
// it on demand.
type Stats struct {
	Sheet *stat.Sheet
}

var StatsComponent = NewComponent[Stats]()
