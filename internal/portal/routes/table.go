// Package routes holds the portal's static route table and the guard that
// enforces it.
package routes

// Access classes a route by who may reach it.
type Access int

const (
	// AccessPublic routes are reachable with or without a session.
	AccessPublic Access = iota
	// AccessShared routes are reachable by any signed-in user.
	AccessShared
	// AccessTreasury routes are reachable by treasury users only.
	AccessTreasury
)

// Well-known paths the guard redirects to.
const (
	Home      = "/"
	LoginPath = "/login"
)

// table maps echo route patterns to their access class. Screen routes and the
// form actions behind them share entries.
var table = map[string]Access{
	LoginPath:                AccessPublic,
	"/reset-password/:token": AccessPublic,

	// Operational endpoints, outside the screen surface.
	"/metrics": AccessPublic,
	"/health":  AccessPublic,

	Home:      AccessShared,
	"/logout": AccessShared,

	// Branch portal actions.
	"/supplier-requests":           AccessShared,
	"/reviews":                     AccessShared,
	"/notifications/:id/read":      AccessShared,
	"/notifications/mark-all-read": AccessShared,

	// Treasury screens.
	"/suppliers":       AccessTreasury,
	"/reports":         AccessTreasury,
	"/tag-management":  AccessTreasury,
	"/user-management": AccessTreasury,

	// Treasury actions.
	"/suppliers/:id":                 AccessTreasury,
	"/supplier-requests/:id/approve": AccessTreasury,
	"/supplier-requests/:id/decline": AccessTreasury,
	"/tag-management/:id":            AccessTreasury,
	"/user-management/:id":           AccessTreasury,
	"/user-management/:id/request-password-reset": AccessTreasury,
}

// AccessFor returns the access class of a registered route pattern. known is
// false for paths outside the table, which the guard redirects home.
func AccessFor(path string) (access Access, known bool) {
	access, known = table[path]
	return access, known
}
