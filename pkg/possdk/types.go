package possdk

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================================
// Auth Types
// ============================================================================

// TokenPair is the response of the token issuance and refresh endpoints.
// Refresh is empty on refresh responses, which only rotate the access token.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// User is the identity returned by GET /auth/users/me/.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Tenant      string `json:"tenant,omitempty"`
	IsSuperuser bool   `json:"is_superuser"`
	IsStaff     bool   `json:"is_staff"`
}

// IsAdmin reports whether the user gets the admin-first landing treatment.
func (u *User) IsAdmin() bool {
	return u.IsSuperuser || u.IsStaff
}

// CreateUserRequest creates a backend user during tenant setup.
type CreateUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Tenant    string `json:"tenant,omitempty"`
}

// ============================================================================
// Directory Types (tenants, locations, role assignments)
// ============================================================================

// Tenant is an organisation-level partition of the backend's data.
type Tenant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug,omitempty"`
	Currency string `json:"currency,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// CreateTenantRequest creates a tenant during first-run setup.
type CreateTenantRequest struct {
	Name     string `json:"name"`
	Slug     string `json:"slug,omitempty"`
	Currency string `json:"currency,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Location is a physical or logical sales point under a tenant.
type Location struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code,omitempty"`
	LocationType string `json:"location_type"`
}

// LocationRole associates a user with a location under a named role. It is
// read-only from the client's perspective.
type LocationRole struct {
	ID           string `json:"id"`
	User         string `json:"user"`
	Location     string `json:"location"`
	LocationName string `json:"location_name,omitempty"`
	RoleCode     string `json:"role_code"`
	RoleName     string `json:"role_name"`
}

// ============================================================================
// Inventory Types
// ============================================================================

// Product is a sellable item.
type Product struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	Barcode       string `json:"barcode,omitempty"`
	CategoryName  string `json:"category_name,omitempty"`
	UnitOfMeasure string `json:"unit_of_measure,omitempty"`
	IsActive      bool   `json:"is_active"`
}

// StockBalance is the on-hand quantity of a product at a location.
type StockBalance struct {
	ID             string          `json:"id"`
	Location       string          `json:"location"`
	LocationName   string          `json:"location_name,omitempty"`
	Product        string          `json:"product"`
	ProductName    string          `json:"product_name,omitempty"`
	ProductSKU     string          `json:"product_sku,omitempty"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
}

// ============================================================================
// Sales Types
// ============================================================================

// SaleItemInput is one cart line submitted to the sale processor.
type SaleItemInput struct {
	Product        string          `json:"product"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// PaymentInput is one payment leg of a sale.
type PaymentInput struct {
	PaymentMethod string          `json:"payment_method"`
	Amount        decimal.Decimal `json:"amount"`
}

// SaleRequest is the body of POST /sales/sales/process/.
type SaleRequest struct {
	Tenant   string          `json:"tenant,omitempty"`
	Shop     string          `json:"shop"`
	Items    []SaleItemInput `json:"items"`
	Payments []PaymentInput  `json:"payments"`
	Notes    string          `json:"notes,omitempty"`
}

// Sale is the processed sale returned by the backend.
type Sale struct {
	ID          string          `json:"id"`
	SaleNumber  string          `json:"sale_number"`
	Shop        string          `json:"shop"`
	ShopName    string          `json:"shop_name,omitempty"`
	State       string          `json:"state"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ============================================================================
// Notification Types
// ============================================================================

// Notification is one entry in the user's notification feed.
type Notification struct {
	ID               string    `json:"id"`
	NotificationType string    `json:"notification_type"`
	Title            string    `json:"title"`
	Message          string    `json:"message"`
	IsRead           bool      `json:"is_read"`
	CreatedAt        time.Time `json:"created_at"`
}

// ============================================================================
// Analytics Types
// ============================================================================

// TopProduct is one row of the top-products report.
type TopProduct struct {
	ProductName   string          `json:"product__name"`
	ProductSKU    string          `json:"product__sku"`
	TotalQuantity decimal.Decimal `json:"total_quantity,omitempty"`
	TotalRevenue  decimal.Decimal `json:"total_revenue,omitempty"`
	TotalProfit   decimal.Decimal `json:"total_profit,omitempty"`
}

// SalesSummaryRow is one period bucket of the sales summary report.
type SalesSummaryRow struct {
	Period       string          `json:"period"`
	TotalSales   int64           `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalItems   decimal.Decimal `json:"total_items"`
	AvgSale      decimal.Decimal `json:"avg_sale"`
}

// ProfitLossRow is one group of the profit/loss report, keyed by product or
// shop depending on the requested grouping.
type ProfitLossRow struct {
	ProductName string          `json:"product__name,omitempty"`
	ProductSKU  string          `json:"product__sku,omitempty"`
	ShopName    string          `json:"sale__shop__name,omitempty"`
	Revenue     decimal.Decimal `json:"revenue"`
	Cost        decimal.Decimal `json:"cost"`
	Profit      decimal.Decimal `json:"profit"`
	Margin      decimal.Decimal `json:"margin"`
}
