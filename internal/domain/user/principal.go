package user

// Principal is the authenticated caller resolved from a bearer token.
type Principal struct {
	UserID int64
	Email  string
	Roles  []string
}

func (p Principal) HasRole(role string) bool {
	for _, item := range p.Roles {
		if item == role {
			return true
		}
	}
	return false
}
