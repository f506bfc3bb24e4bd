package domain

// Registration statuses. Only StatusConfirmed is produced today.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// User roles.
const (
	RoleApplicant = "applicant"
	RoleCurator   = "curator"
	RoleModerator = "moderator"
)
