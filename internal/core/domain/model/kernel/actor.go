package kernel

import "fmt"

// Actor is who performed an action: a user, a guest email, a link holder or the system.
type Actor struct {
	userID *int64
	email  string
}

// SystemActor is used by background jobs.
func SystemActor() Actor {
	return Actor{}
}

// RestoreActor rebuilds an actor from persisted columns.
func RestoreActor(userID *int64, email string) Actor {
	return Actor{userID: userID, email: email}
}

func (a Actor) UserID() *int64 {
	return a.userID
}

func (a Actor) Email() string {
	return a.email
}

func (a Actor) IsSystem() bool {
	return a.userID == nil && a.email == ""
}

func (a Actor) String() string {
	switch {
	case a.userID != nil:
		return fmt.Sprintf("user:%d", *a.userID)
	case a.email != "":
		return a.email
	default:
		return "system"
	}
}
