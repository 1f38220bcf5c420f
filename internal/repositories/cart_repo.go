package repositories

// CartRepository defines the interface for cart data access. A cart is a
// per-customer mapping of product id to quantity; quantities are always
// positive and a zeroed line is removed rather than stored.
type CartRepository interface {
	// Get returns the cart lines for a customer. A customer with no cart
	// yet gets an empty mapping, never an error.
	Get(customerID int) (map[int]int, error)
	// SetQuantity sets the quantity for one line, creating the cart and the
	// line as needed. A quantity of zero or less removes the line.
	SetQuantity(customerID, productID, quantity int) error
	// Remove deletes one line; it fails when the line does not exist.
	Remove(customerID, productID int) error
	// Clear empties the customer's cart. Clearing an absent cart is a no-op.
	Clear(customerID int) error
	// ActiveCount reports how many customers currently have a non-empty cart.
	ActiveCount() (int, error)
}
