package link

import (
	"fmt"
	"time"

	"storefront/internal/pkg/errs"
)

// Action names a customer action reachable through a signed link. Each action
// is its own signing domain: a token issued for one never verifies for another.
type Action string

const (
	ActionConfirm Action = "confirm"
	ActionCancel  Action = "cancel"
	ActionRate    Action = "rate"
	ActionRepeat  Action = "repeat"
	ActionCall    Action = "call"
	ActionAddress Action = "address"
	ActionPhoto   Action = "photo"
)

const day = 24 * time.Hour

var maxAges = map[Action]time.Duration{
	ActionConfirm: 14 * day,
	ActionCancel:  14 * day,
	ActionRate:    30 * day,
	ActionRepeat:  30 * day,
	ActionCall:    7 * day,
	ActionAddress: 7 * day,
	ActionPhoto:   1 * day,
}

// pathSegments are the URL segments of the link pages.
var pathSegments = map[Action]string{
	ActionConfirm: "confirm",
	ActionCancel:  "cancel",
	ActionRate:    "rate",
	ActionRepeat:  "repeat",
	ActionCall:    "call",
	ActionAddress: "change-address",
	ActionPhoto:   "photo",
}

// Actions lists every action in keyboard order.
func Actions() []Action {
	return []Action{
		ActionConfirm, ActionCancel,
		ActionRepeat, ActionCall,
		ActionAddress, ActionPhoto,
		ActionRate,
	}
}

func ParseAction(raw string) (Action, error) {
	a := Action(raw)
	if _, ok := maxAges[a]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("unknown action %q", raw))
	}
	return a, nil
}

func (a Action) String() string {
	return string(a)
}

// MaxAge is how long a token for the action stays valid.
func (a Action) MaxAge() time.Duration {
	return maxAges[a]
}

// PathSegment is the route segment of the action's page, e.g. "change-address".
func (a Action) PathSegment() string {
	return pathSegments[a]
}
