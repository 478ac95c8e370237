package kernel

// Caller is the identity an operation runs on behalf of. Privileged callers
// (administrators) may act on orders, payments and shipments they do not own.
type Caller struct {
	userID     UUID
	privileged bool
}

// NewCaller validates the caller's identifier.
func NewCaller(userID UUID, privileged bool) (Caller, error) {
	if err := userID.Validate(); err != nil {
		return Caller{}, err
	}
	return Caller{userID: userID, privileged: privileged}, nil
}

func (c Caller) UserID() UUID {
	return c.userID
}

func (c Caller) IsPrivileged() bool {
	return c.privileged
}

// CanAccess reports whether the caller may act on an entity owned by owner.
func (c Caller) CanAccess(owner UUID) bool {
	return c.privileged || (c.userID.Validate() == nil && c.userID.IsEqual(owner))
}

// Validate rejects the zero Caller.
func (c Caller) Validate() error {
	return c.userID.Validate()
}
