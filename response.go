package velocitybloom

// ContainsResponse is the answer to a membership query. It is deliberately
// not a bool: only Absent is certain.
type ContainsResponse uint8

const (
	Absent          ContainsResponse = iota // Value was never inserted.
	PossiblyPresent                         // Value may have been inserted.
)

func (r ContainsResponse) String() string {
	switch r {
	case Absent:
		return "Absent"
	case PossiblyPresent:
		return "PossiblyPresent"
	default:
		return "ContainsResponse(?)"
	}
}
