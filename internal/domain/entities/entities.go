package entities

import "errors"

// Domain errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is inactive")
)

// Record is one schemaless document stored in a collection. Beyond the
// system fields (_id, createdAt, updatedAt) the shape is whatever the
// caller persisted; validation happens at the route boundary.
type Record map[string]interface{}

// System field names shared by every collection.
const (
	FieldID        = "_id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// ID returns the record identifier, or "" when unset.
func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

// String returns the named field as a string, or "" when absent or not a string.
func (r Record) String(field string) string {
	v, _ := r[field].(string)
	return v
}

// Bool returns the named field as a bool.
func (r Record) Bool(field string) bool {
	v, _ := r[field].(bool)
	return v
}

// Number returns the named field as a float64. JSON numbers decode to
// float64, so this covers every numeric field in a stored record.
func (r Record) Number(field string) float64 {
	v, _ := r[field].(float64)
	return v
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// WithoutPassword returns a copy of the record with the password field
// removed. User records must never leave the service layer with it.
func (r Record) WithoutPassword() Record {
	out := r.Clone()
	delete(out, "password")
	return out
}

// Resource describes one collection exposed by the admin API.
type Resource struct {
	// Name is the collection name and the URL path segment.
	Name string
	// Prefix is the identifier prefix for records in this collection,
	// e.g. "product" yields ids like product_1712000000000_k3f9a2b.
	Prefix string
}

// CatalogResources are the collections served by the generic CRUD
// handler. Users get their own handler because of the password and
// email policies layered on top of the store.
var CatalogResources = []Resource{
	{Name: "products", Prefix: "product"},
	{Name: "categories", Prefix: "category"},
	{Name: "brands", Prefix: "brand"},
	{Name: "subcategories", Prefix: "subcategory"},
	{Name: "orders", Prefix: "order"},
}

// UserResource is the users collection.
var UserResource = Resource{Name: "users", Prefix: "user"}

// DashboardStats is the aggregate served by /api/admin/dashboard/stats.
type DashboardStats struct {
	TotalProducts int     `json:"totalProducts"`
	TotalOrders   int     `json:"totalOrders"`
	TotalUsers    int     `json:"totalUsers"`
	TotalRevenue  float64 `json:"totalRevenue"`
}
