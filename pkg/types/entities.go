package types

// Entity type names used to key adapters, column models and dialogs.
const (
	EntityCustomers  = "customers"
	EntityProducts   = "products"
	EntityCategories = "categories"
)

// StandardEntityTypes lists all entity type names for enumeration.
var StandardEntityTypes = []string{
	EntityCustomers,
	EntityProducts,
	EntityCategories,
}

// IsEntityType reports whether name is one of StandardEntityTypes.
func IsEntityType(name string) bool {
	for _, n := range StandardEntityTypes {
		if n == name {
			return true
		}
	}
	return false
}
