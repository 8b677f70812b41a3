package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"questions:view",
		"results:submit",
		"audio:upload",
	},
	"teacher": {
		"questions:view",
		"questions:manage",
		"grid:manage",
		"results:submit",
		"results:view-all",
		"audio:upload",
		"audio:view",
		"users:bulk_upsert",
		"users:list",
	},
	"admin": {
		"*", // everything
	},
}
