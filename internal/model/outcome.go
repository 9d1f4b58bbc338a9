package model

// Outcome classifies a check-in or login response.
type Outcome int

const (
	Unknown Outcome = iota
	Success
	AlreadyDone
	Failure
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case AlreadyDone:
		return "already_done"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// OK reports whether the outcome counts as a completed check-in.
// Unknown fails closed.
func (o Outcome) OK() bool {
	return o == Success || o == AlreadyDone
}

// VendorResult is an SSPANEL JSON response normalized at the boundary.
type VendorResult struct {
	Ret       int
	Msg       string
	SetCookie []string
}
