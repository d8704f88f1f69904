package kind

// Kind is a searchable entity type.
type Kind string

// Searchable entity types.
const (
	Job     Kind = "job"
	Company Kind = "company"
	Person  Kind = "person"
	Course  Kind = "course"
)

// Priority lists every kind in the order results are concatenated.
var Priority = []Kind{Job, Company, Person, Course}

// IsValid checks if the kind is one of the searchable types.
func (k Kind) IsValid() bool {
	return k == Job || k == Company || k == Person || k == Course
}

// Rank returns the position of k in Priority, or len(Priority) for unknown kinds.
func (k Kind) Rank() int {
	for i, p := range Priority {
		if p == k {
			return i
		}
	}
	return len(Priority)
}
