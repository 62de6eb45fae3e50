package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/shopspring/decimal"
	"github.com/yunisnasibov/e-ticaret-12/internal/models"
	"github.com/yunisnasibov/e-ticaret-12/internal/shop"
)

// tools binds the MCP tool handlers to one shop.
type tools struct {
	shop *shop.Shop
}

func registerTools(s *server.MCPServer, t *tools) {
	sortOpt := mcp.WithString("sort",
		mcp.Description("Sort order: default, price-asc, price-desc, name-asc, name-desc"),
		mcp.Enum("default", "price-asc", "price-desc", "name-asc", "name-desc"),
	)
	productID := func(desc string) mcp.ToolOption {
		return mcp.WithNumber("id", mcp.Required(), mcp.Description(desc))
	}

	// catalog
	s.AddTool(mcp.NewTool("list_products",
		mcp.WithDescription("List all products, optionally filtered by text and category"),
		mcp.WithString("query", mcp.Description("Case-insensitive match on title or description")),
		mcp.WithString("category", mcp.Description("Category slug, e.g. electronics, home, gifts")),
	), t.listProducts)

	s.AddTool(mcp.NewTool("search_products",
		mcp.WithDescription("Search products with category, price range and sort"),
		mcp.WithString("query", mcp.Description("Case-insensitive match on title or description")),
		mcp.WithString("category", mcp.Description("Category slug")),
		mcp.WithNumber("min_price", mcp.Description("Lowest price (default 0)")),
		mcp.WithNumber("max_price", mcp.Description("Highest price (default: highest catalog price)")),
		sortOpt,
	), t.searchProducts)

	s.AddTool(mcp.NewTool("get_category",
		mcp.WithDescription("List the products of one category"),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Category slug")),
		sortOpt,
	), t.getCategory)

	s.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List category slugs, including the home and gifts collections"),
	), t.listCategories)

	s.AddTool(mcp.NewTool("product_detail",
		mcp.WithDescription("Get product details with reviews, favorite flag and cart quantity"),
		productID("Product ID"),
	), t.productDetail)

	// cart
	s.AddTool(mcp.NewTool("cart_view",
		mcp.WithDescription("Show cart lines, item count and total"),
	), t.cartView)
	s.AddTool(mcp.NewTool("cart_add",
		mcp.WithDescription("Add one unit of a product to the cart"),
		productID("Product ID"),
	), t.cartAdd)
	s.AddTool(mcp.NewTool("cart_remove",
		mcp.WithDescription("Remove a product line from the cart"),
		productID("Product ID"),
	), t.cartRemove)
	s.AddTool(mcp.NewTool("cart_decrease",
		mcp.WithDescription("Remove one unit of a product; the quantity never drops below one"),
		productID("Product ID"),
	), t.cartDecrease)
	s.AddTool(mcp.NewTool("cart_clear",
		mcp.WithDescription("Empty the cart"),
	), t.cartClear)

	// favorites
	s.AddTool(mcp.NewTool("favorites_list",
		mcp.WithDescription("List favorite products"),
	), t.favoritesList)
	s.AddTool(mcp.NewTool("favorite_toggle",
		mcp.WithDescription("Add a product to favorites, or remove it if already there"),
		productID("Product ID"),
	), t.favoriteToggle)

	// orders
	s.AddTool(mcp.NewTool("checkout",
		mcp.WithDescription("Place an order for the cart and empty it. Blank shipping fields are filled from the logged-in user's saved address."),
		mcp.WithString("full_name", mcp.Description("Recipient full name")),
		mcp.WithString("address", mcp.Description("Street address")),
		mcp.WithString("city", mcp.Description("City")),
		mcp.WithString("postal_code", mcp.Description("Postal code")),
		mcp.WithString("country", mcp.Description("Country (default Türkiye)")),
		mcp.WithString("payment_method",
			mcp.Description("Payment method (default credit-card)"),
			mcp.Enum(string(shop.PaymentCreditCard), string(shop.PaymentBankTransfer), string(shop.PaymentCashOnDelivery)),
		),
		mcp.WithString("card_number", mcp.Description("Card number, credit-card only")),
		mcp.WithString("card_name", mcp.Description("Name on card, credit-card only")),
		mcp.WithString("expiry_date", mcp.Description("Card expiry MM/YY, credit-card only")),
		mcp.WithString("cvc", mcp.Description("Card CVC, credit-card only")),
	), t.checkout)
	s.AddTool(mcp.NewTool("list_orders",
		mcp.WithDescription("List orders, newest first"),
	), t.listOrders)
	s.AddTool(mcp.NewTool("order_detail",
		mcp.WithDescription("Get one order by ID"),
		mcp.WithString("id", mcp.Required(), mcp.Description("Order ID, e.g. ORD-1700000000000-1A2B3C4D")),
	), t.orderDetail)

	// account
	s.AddTool(mcp.NewTool("register",
		mcp.WithDescription("Create an account and log in"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Full name")),
		mcp.WithString("email", mcp.Required(), mcp.Description("Email address")),
		mcp.WithString("password", mcp.Required(), mcp.Description("Password")),
		mcp.WithString("confirm_password", mcp.Required(), mcp.Description("Password again")),
	), t.register)
	s.AddTool(mcp.NewTool("login",
		mcp.WithDescription("Log in with email and password"),
		mcp.WithString("email", mcp.Required(), mcp.Description("Email address")),
		mcp.WithString("password", mcp.Required(), mcp.Description("Password")),
	), t.login)
	s.AddTool(mcp.NewTool("logout",
		mcp.WithDescription("Log out"),
	), t.logout)
	s.AddTool(mcp.NewTool("profile",
		mcp.WithDescription("Show the logged-in user with saved address and the five most recent orders"),
	), t.profile)
	s.AddTool(mcp.NewTool("update_profile",
		mcp.WithDescription("Change the logged-in user's name, email or avatar"),
		mcp.WithString("name", mcp.Description("New name")),
		mcp.WithString("email", mcp.Description("New email address")),
		mcp.WithString("avatar", mcp.Description("Avatar URL")),
	), t.updateProfile)
	s.AddTool(mcp.NewTool("save_address",
		mcp.WithDescription("Save the logged-in user's shipping address"),
		mcp.WithString("full_name", mcp.Required(), mcp.Description("Recipient full name")),
		mcp.WithString("address", mcp.Required(), mcp.Description("Street address")),
		mcp.WithString("city", mcp.Required(), mcp.Description("City")),
		mcp.WithString("postal_code", mcp.Required(), mcp.Description("Postal code")),
		mcp.WithString("country", mcp.Description("Country (default Türkiye)")),
		mcp.WithString("phone", mcp.Required(), mcp.Description("Phone number")),
	), t.saveAddress)

	// reviews
	s.AddTool(mcp.NewTool("add_review",
		mcp.WithDescription("Review a product"),
		mcp.WithNumber("product_id", mcp.Required(), mcp.Description("Product ID")),
		mcp.WithNumber("rating", mcp.Required(), mcp.Description("Rating from 1 to 5")),
		mcp.WithString("comment", mcp.Required(), mcp.Description("Review text")),
	), t.addReview)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func errorResult(prefix string, err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", prefix, err)), nil
}

// requireID reads the numeric "id"-like argument name. 0 is never a
// catalog ID.
func requireID(request mcp.CallToolRequest, name string) (int, *mcp.CallToolResult) {
	id := request.GetInt(name, 0)
	if id <= 0 {
		return 0, mcp.NewToolResultError(name + " is required")
	}
	return id, nil
}

func optionalPrice(request mcp.CallToolRequest, name string) *decimal.Decimal {
	if _, ok := request.GetArguments()[name]; !ok {
		return nil
	}
	d := decimal.NewFromFloat(request.GetFloat(name, 0))
	return &d
}

func (t *tools) listProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view := t.shop.Browse(ctx, shop.BrowseOptions{
		Query:    request.GetString("query", ""),
		Category: request.GetString("category", ""),
	})
	return jsonResult(view)
}

func (t *tools) searchProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	order, err := shop.ParseSortOrder(request.GetString("sort", ""))
	if err != nil {
		return errorResult("search error", err)
	}
	view := t.shop.Search(ctx, shop.SearchOptions{
		Query:    request.GetString("query", ""),
		Category: request.GetString("category", ""),
		MinPrice: optionalPrice(request, "min_price"),
		MaxPrice: optionalPrice(request, "max_price"),
		Sort:     order,
	})
	return jsonResult(view)
}

func (t *tools) getCategory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug := request.GetString("slug", "")
	if slug == "" {
		return mcp.NewToolResultError("slug is required"), nil
	}
	order, err := shop.ParseSortOrder(request.GetString("sort", ""))
	if err != nil {
		return errorResult("category error", err)
	}
	return jsonResult(t.shop.Category(ctx, slug, order))
}

func (t *tools) listCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(t.shop.Categories(ctx))
}

func (t *tools) productDetail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, bad := requireID(request, "id")
	if bad != nil {
		return bad, nil
	}
	view, err := t.shop.Product(ctx, id)
	if err != nil {
		return errorResult("detail error", err)
	}
	return jsonResult(view)
}

func (t *tools) cartView(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(t.shop.CartView())
}

func (t *tools) cartAdd(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, bad := requireID(request, "id")
	if bad != nil {
		return bad, nil
	}
	view, err := t.shop.AddToCart(ctx, id)
	if err != nil {
		return errorResult("cart error", err)
	}
	return jsonResult(view)
}

func (t *tools) cartRemove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, bad := requireID(request, "id")
	if bad != nil {
		return bad, nil
	}
	view, err := t.shop.RemoveFromCart(ctx, id)
	if err != nil {
		return errorResult("cart error", err)
	}
	return jsonResult(view)
}

func (t *tools) cartDecrease(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, bad := requireID(request, "id")
	if bad != nil {
		return bad, nil
	}
	view, err := t.shop.DecreaseQuantity(ctx, id)
	if err != nil {
		return errorResult("cart error", err)
	}
	return jsonResult(view)
}

func (t *tools) cartClear(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := t.shop.ClearCart(ctx); err != nil {
		return errorResult("cart error", err)
	}
	return jsonResult(t.shop.CartView())
}

func (t *tools) favoritesList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	favs := t.shop.Favorites()
	if favs == nil {
		favs = []models.Product{}
	}
	return jsonResult(favs)
}

func (t *tools) favoriteToggle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, bad := requireID(request, "id")
	if bad != nil {
		return bad, nil
	}
	fav, err := t.shop.ToggleFavorite(ctx, id)
	if err != nil {
		return errorResult("favorites error", err)
	}
	return jsonResult(map[string]any{"id": id, "favorite": fav})
}

func (t *tools) checkout(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	form := shop.CheckoutForm{
		FullName:      request.GetString("full_name", ""),
		Address:       request.GetString("address", ""),
		City:          request.GetString("city", ""),
		PostalCode:    request.GetString("postal_code", ""),
		Country:       request.GetString("country", ""),
		PaymentMethod: shop.PaymentMethod(request.GetString("payment_method", "")),
		CardNumber:    request.GetString("card_number", ""),
		CardName:      request.GetString("card_name", ""),
		ExpiryDate:    request.GetString("expiry_date", ""),
		CVC:           request.GetString("cvc", ""),
	}
	order, err := t.shop.Checkout(ctx, form)
	if err != nil {
		return errorResult("checkout error", err)
	}
	return jsonResult(order)
}

func (t *tools) listOrders(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	orders := t.shop.Orders()
	if orders == nil {
		orders = []models.Order{}
	}
	return jsonResult(orders)
}

func (t *tools) orderDetail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	order, err := t.shop.Order(id)
	if err != nil {
		return errorResult("order error", err)
	}
	return jsonResult(order)
}

func (t *tools) register(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	u, err := t.shop.Register(ctx, shop.RegisterForm{
		Name:            request.GetString("name", ""),
		Email:           request.GetString("email", ""),
		Password:        request.GetString("password", ""),
		ConfirmPassword: request.GetString("confirm_password", ""),
	})
	if err != nil {
		return errorResult("register error", err)
	}
	return jsonResult(u)
}

func (t *tools) login(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	u, err := t.shop.Login(ctx, request.GetString("email", ""), request.GetString("password", ""))
	if err != nil {
		return errorResult("login error", err)
	}
	return jsonResult(u)
}

func (t *tools) logout(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := t.shop.Logout(ctx); err != nil {
		return errorResult("logout error", err)
	}
	return mcp.NewToolResultText("logged out"), nil
}

func (t *tools) profile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view, err := t.shop.Profile(ctx)
	if err != nil {
		return errorResult("profile error", err)
	}
	return jsonResult(view)
}

func (t *tools) updateProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var patch models.UserPatch
	args := request.GetArguments()
	for name, dst := range map[string]**string{"name": &patch.Name, "email": &patch.Email, "avatar": &patch.Avatar} {
		if _, ok := args[name]; ok {
			v := request.GetString(name, "")
			*dst = &v
		}
	}
	u, err := t.shop.UpdateProfile(ctx, patch)
	if err != nil {
		return errorResult("profile error", err)
	}
	return jsonResult(u)
}

func (t *tools) saveAddress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	addr, err := t.shop.SaveAddress(ctx, models.Address{
		ShippingAddress: models.ShippingAddress{
			FullName:   request.GetString("full_name", ""),
			Address:    request.GetString("address", ""),
			City:       request.GetString("city", ""),
			PostalCode: request.GetString("postal_code", ""),
			Country:    request.GetString("country", ""),
		},
		Phone: request.GetString("phone", ""),
	})
	if err != nil {
		return errorResult("address error", err)
	}
	return jsonResult(addr)
}

func (t *tools) addReview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, bad := requireID(request, "product_id")
	if bad != nil {
		return bad, nil
	}
	rv, err := t.shop.AddReview(ctx, id, request.GetInt("rating", 0), request.GetString("comment", ""))
	if err != nil {
		return errorResult("review error", err)
	}
	return jsonResult(rv)
}
