package models

// Role is the semantic category assigned to a column.
type Role string

const (
	RoleBrewery       Role = "BREWERY"
	RoleName          Role = "NAME"
	RoleStyle         Role = "STYLE"
	RoleVolume        Role = "VOLUME"
	RolePrice         Role = "PRICE"
	RoleOrderQuantity Role = "ORDER_QUANTITY"
	RoleIgnore        Role = "IGNORE"
)

// Roles lists every role in a stable order.
var Roles = []Role{
	RoleBrewery,
	RoleName,
	RoleStyle,
	RoleVolume,
	RolePrice,
	RoleOrderQuantity,
	RoleIgnore,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// ColumnRoles maps column positions to roles.
type ColumnRoles []Role

// Columns returns the positions classified as role, in column order.
func (cr ColumnRoles) Columns(role Role) []int {
	var cols []int
	for i, r := range cr {
		if r == role {
			cols = append(cols, i)
		}
	}
	return cols
}

// Sample is one observed (header text, role) pair used to train the classifier.
type Sample struct {
	Header string `json:"header"`
	Role   Role   `json:"role"`
}
