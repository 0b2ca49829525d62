package enum

// UserRole is the single role held by a back office user
type UserRole string

const (
	UserRoleAdmin    UserRole = "Admin"
	UserRoleManager  UserRole = "Manager"
	UserRoleSalesRep UserRole = "Sales Rep"
	UserRoleCashier  UserRole = "Cashier"
	UserRoleUser     UserRole = "User"
)

// Permissions checked by the HTTP layer
const (
	PermissionManageCatalog    = "manage-catalog"
	PermissionManageStock      = "manage-stock"
	PermissionManageProduction = "manage-production"
	PermissionManageCustomers  = "manage-customers"
	PermissionManageSuppliers  = "manage-suppliers"
	PermissionManageSales      = "manage-sales"
	PermissionManageUsers      = "manage-users"
	PermissionViewReports      = "view-reports"
)

var rolePermissions = map[UserRole][]string{
	UserRoleAdmin: {
		PermissionManageCatalog, PermissionManageStock, PermissionManageProduction,
		PermissionManageCustomers, PermissionManageSuppliers, PermissionManageSales,
		PermissionManageUsers, PermissionViewReports,
	},
	UserRoleManager: {
		PermissionManageCatalog, PermissionManageStock, PermissionManageProduction,
		PermissionManageCustomers, PermissionManageSuppliers, PermissionManageSales,
		PermissionViewReports,
	},
	UserRoleSalesRep: {PermissionManageCustomers, PermissionManageSales},
	UserRoleCashier:  {PermissionManageSales},
	UserRoleUser:     {},
}

// UserRoles lists the roles from most to least privileged
func UserRoles() []UserRole {
	return []UserRole{UserRoleAdmin, UserRoleManager, UserRoleSalesRep, UserRoleCashier, UserRoleUser}
}

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Permissions returns a copy of the permissions granted to the role
func (r UserRole) Permissions() []string {
	perms := rolePermissions[r]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}
