package auth

// Permission is an atomic capability token. Permissions are granted to roles,
// never to users directly.
type Permission string

const (
	PermissionAddProduct     Permission = "add_product"
	PermissionAddReview      Permission = "add_review"
	PermissionDeleteProduct  Permission = "delete_product"
	PermissionDeleteReview   Permission = "delete_review"
	PermissionCreateCategory Permission = "create_category"
	PermissionCreateBrand    Permission = "create_brand"
	PermissionCreateMarket   Permission = "create_market"
	PermissionManageUsers    Permission = "manage_users"
)
