package rbac

const (
	RolePlayer   = "player"
	RoleOperator = "operator"
)

const (
	PermReview      = "quiz:review"
	PermQuiz        = "quiz:take"
	PermSubmit      = "quiz:submit"
	PermStatus      = "progress:view"
	PermReset       = "identity:reset"
	PermStats       = "admin:stats"
	PermPrune       = "admin:prune"
	PermImageUpload = "admin:image_upload"
)

// RolePermissions is the default policy. Patterns ending in "*" match by prefix.
var RolePermissions = map[string][]string{
	RolePlayer: {
		"quiz:*",
		PermStatus,
		PermReset,
	},
	RoleOperator: {
		"*",
	},
}
