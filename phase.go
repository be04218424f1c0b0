package hohmann

import "fmt"

// Phase is the discriminant of the transfer state machine.
type Phase uint8

const (
	// Idle coasts on the current circular orbit until a transfer is requested.
	Idle Phase = iota
	// PreBurnCoast coasts on the initial circular orbit before the first burn.
	PreBurnCoast
	// Burn1 raises (or lowers) the speed to the transfer ellipse speed at r1.
	Burn1
	// TransferCoast coasts along half of the transfer ellipse.
	TransferCoast
	// Burn2 circularizes at r2.
	Burn2
	// PostBurnCoast coasts on the new circular orbit before returning to Idle.
	PostBurnCoast
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case PreBurnCoast:
		return "pre-burn coast"
	case Burn1:
		return "burn 1"
	case TransferCoast:
		return "transfer coast"
	case Burn2:
		return "burn 2"
	case PostBurnCoast:
		return "post-burn coast"
	}
	panic("cannot stringify unknown phase")
}

// MarshalText implements encoding.TextMarshaler, for JSON hosts.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	for q := Idle; q <= PostBurnCoast; q++ {
		if q.String() == string(text) {
			*p = q
			return nil
		}
	}
	return fmt.Errorf("unknown phase `%s`", text)
}

// Burning returns whether a burn is in progress during this phase.
func (p Phase) Burning() bool {
	return p == Burn1 || p == Burn2
}

// Circular returns whether the vehicle is on a circular orbit during this phase.
func (p Phase) Circular() bool {
	return p == Idle || p == PreBurnCoast || p == PostBurnCoast
}

// phaseRule is one row of the transition table.
type phaseRule struct {
	next     Phase
	duration func(Durations) int // nil when the phase only ends on a command
}

// phaseTable drives the automatic transitions; Idle → PreBurnCoast only
// happens on a start transfer command.
var phaseTable = map[Phase]phaseRule{
	Idle:          {Idle, nil},
	PreBurnCoast:  {Burn1, func(d Durations) int { return d.PreBurn }},
	Burn1:         {TransferCoast, func(d Durations) int { return d.Burn }},
	TransferCoast: {Burn2, func(d Durations) int { return d.Coast }},
	Burn2:         {PostBurnCoast, func(d Durations) int { return d.Burn }},
	PostBurnCoast: {Idle, func(d Durations) int { return d.PostBurn }},
}
