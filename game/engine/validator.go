package engine

// ViolationReason classifies an illegal degree.
type ViolationReason string

const (
	DeadEnd         ViolationReason = "dead_end"         // non-entity point with one connection
	Branch          ViolationReason = "branch"           // non-entity point with three or more
	EntityOverwired ViolationReason = "entity_overwired" // entity point with two or more
)

// Violation describes one path point whose degree breaks the legality rule.
type Violation struct {
	Point  PathPoint       `json:"point"`
	Degree int             `json:"degree"`
	Entity *Entity         `json:"entity,omitempty"`
	Reason ViolationReason `json:"reason"`
}

// IsValid reports whether every path point has a legal degree.
func IsValid(network PathNetworkState) bool {
	for p, degree := range network.Degrees {
		if !IsValidConnectionCount(PathPoint(p), degree) {
			return false
		}
	}
	return true
}

// Validate returns every path point with an illegal degree, ascending by
// point. An empty result means the network is valid.
func Validate(network PathNetworkState) []Violation {
	var violations []Violation
	for i, degree := range network.Degrees {
		p := PathPoint(i)
		if IsValidConnectionCount(p, degree) {
			continue
		}

		v := Violation{Point: p, Degree: degree}
		if e, ok := EntityAtPoint(p); ok {
			v.Entity = &e
			v.Reason = EntityOverwired
		} else if degree == 1 {
			v.Reason = DeadEnd
		} else {
			v.Reason = Branch
		}
		violations = append(violations, v)
	}
	return violations
}
