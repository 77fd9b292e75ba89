package entity

type Role int16

const (
	// RoleUnknown is mean role is not known / not set.
	RoleUnknown Role = 0

	// RoleUser mean a regular filer account.
	RoleUser Role = 1

	// RoleAdmin mean a back-office reviewer account.
	RoleAdmin Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

func (r Role) IsUnknown() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return false
	default:
		return true
	}
}

func RoleFromString(str string) Role {
	switch str {
	case "user":
		return RoleUser
	case "admin":
		return RoleAdmin
	default:
		return RoleUnknown
	}
}
