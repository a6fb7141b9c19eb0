package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"blushmart-web/internal/analytics"
	"blushmart-web/internal/api"
	"blushmart-web/internal/cart"
	"blushmart-web/internal/catalog"
	"blushmart-web/internal/chat"
	"blushmart-web/internal/config"
	"blushmart-web/internal/discount"
	"blushmart-web/internal/listing"
	"blushmart-web/internal/logger"
	"blushmart-web/internal/middleware"
	"blushmart-web/internal/order"
	"blushmart-web/internal/payment"
	"blushmart-web/internal/review"
	"blushmart-web/internal/session"
	"blushmart-web/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Backend catalog pages are fetched wide so listing filters see the full
// assortment; pagination for the storefront happens locally at
// listing.PageSize.
const catalogFetchLimit = 100

const maxUploadBytes = 32 << 20

type Handler struct {
	reg *Registry
	cfg *config.Config
}

// NewRouter wires every storefront and back-office route onto one chi
// router, with request/session tagging, access logging and rate limiting
// applied to everything.
func NewRouter(reg *Registry, cfg *config.Config) http.Handler {
	h := &Handler{reg: reg, cfg: cfg}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.SessionID)
	r.Use(middleware.Logging)
	r.Use(middleware.RateLimit)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signin", h.signIn)
		r.Post("/signup", h.signUp)
		r.Post("/admin/signin", h.adminSignIn)
		r.Post("/signout", h.signOut)
		r.Get("/session", h.sessionState)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Get("/featured", h.featuredProducts)
		r.Get("/deals", h.deals)
		r.Get("/recent", h.recentlyViewed)
		r.Post("/{id}/view", h.recordView)
		r.Get("/{id}/reviews", h.productReviews)
		r.Post("/{id}/reviews", h.createReview)
		r.Post("/", h.createProduct)
		r.Post("/bulk", h.bulkUpload)
		r.Delete("/{id}", h.deleteProduct)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.cartState)
		r.Post("/", h.addToCart)
		r.Put("/", h.updateCartQuantity)
		r.Delete("/{id}", h.removeFromCart)
	})

	r.Delete("/reviews/{id}", h.deleteReview)

	r.Get("/profile", h.profile)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/orders", h.adminOrders)
		r.Patch("/orders/{id}", h.adminUpdateOrderStatus)
		r.Get("/users", h.adminUsers)
		r.Patch("/users/{id}", h.adminSetUserActive)
		r.Get("/deals", h.adminDeals)
		r.Put("/deals/{id}", h.adminUpdateDeal)
		r.Get("/analytics", h.adminAnalytics)
	})

	r.Route("/payment", func(r chi.Router) {
		r.Post("/initialize", h.initializePayment)
		r.Post("/verify", h.verifyPayment)
		r.Post("/receipt", h.receipt)
	})

	r.Post("/chat", h.chatMessage)

	return r
}

// bundle resolves the per-session store bundle, answering 500 itself when
// the session namespace cannot be opened.
func (h *Handler) bundle(w http.ResponseWriter, r *http.Request) *Bundle {
	b, err := h.reg.Resolve(r.Context())
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to resolve session stores", zap.Error(err))
		utils.WriteJSONError(w, "session unavailable", http.StatusInternalServerError)
		return nil
	}
	return b
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeError maps domain errors onto HTTP statuses. Backend errors pass
// their status through unchanged.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		utils.WriteJSONError(w, apiErr.Message, apiErr.Status)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrNotAuthenticated),
		errors.Is(err, payment.ErrMissingCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, session.ErrForbidden),
		errors.Is(err, review.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, cart.ErrItemNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, discount.ErrDealNotFound),
		errors.Is(err, review.ErrReviewNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrMissingCredentials),
		errors.Is(err, session.ErrPasswordMismatch),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrMissingItemID),
		errors.Is(err, catalog.ErrEmptyUpload),
		errors.Is(err, catalog.ErrUnsupportedFile),
		errors.Is(err, catalog.ErrMalformedCSV),
		errors.Is(err, catalog.ErrNoValidRows),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, discount.ErrInvalidPercentage),
		errors.Is(err, analytics.ErrMalformedReport),
		errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, review.ErrEmptyText),
		errors.Is(err, payment.ErrMissingReference),
		errors.Is(err, chat.ErrEmptyInput):
		status = http.StatusBadRequest
	}
	utils.WriteJSONError(w, err.Error(), status)
}

// requireAdmin enforces the back-office role gate before any admin
// operation runs.
func requireAdmin(w http.ResponseWriter, b *Bundle) bool {
	if err := b.Session.RequireRole(session.RoleAdmin); err != nil {
		writeError(w, err)
		return false
	}
	return true
}

// --- auth ---

type authStateResponse struct {
	Authenticated bool          `json:"authenticated"`
	Role          string        `json:"role,omitempty"`
	UserID        string        `json:"userId,omitempty"`
	User          *session.User `json:"user,omitempty"`
}

func authState(b *Bundle) authStateResponse {
	return authStateResponse{
		Authenticated: b.Session.Authenticated(),
		Role:          b.Session.Role(),
		UserID:        b.Session.UserID(),
		User:          b.Session.User(),
	}
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}

	var creds session.Credentials
	if err := decodeBody(r, &creds); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := b.Session.SignIn(r.Context(), creds); err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, authState(b), http.StatusOK)
}

func (h *Handler) adminSignIn(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}

	var creds session.Credentials
	if err := decodeBody(r, &creds); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := b.Session.AdminSignIn(r.Context(), creds); err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, authState(b), http.StatusOK)
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}

	var body struct {
		session.SignupInput
		PasswordConfirm string `json:"passwordConfirm"`
	}
	if err := decodeBody(r, &body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := b.Session.SignUp(r.Context(), body.SignupInput, body.PasswordConfirm); err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, authState(b), http.StatusCreated)
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}

	if err := b.Session.Logout(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	// The bundle is rebuilt from the (now cleared) namespace next time.
	h.reg.Drop(logger.SessionIDFrom(r.Context()))

	utils.WriteJSON(w, authState(b), http.StatusOK)
}

func (h *Handler) sessionState(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}
	utils.WriteJSON(w, authState(b), http.StatusOK)
}

// --- products ---

type listingResponse struct {
	Products   []catalog.Product `json:"products"`
	Page       int               `json:"page"`
	PageCount  int               `json:"pageCount"`
	Categories []string          `json:"categories"`
}

// viewFromQuery builds the listing state for one request: free-text
// query, comma-separated category filter, sort mode and page number.
func viewFromQuery(r *http.Request) *listing.View {
	v := listing.NewView()
	q := r.URL.Query()

	v.Query = q.Get("query")
	v.Sort = listing.SortMode(q.Get("sort"))
	for _, c := range strings.Split(q.Get("categories"), ",") {
		if c = strings.TrimSpace(c); c != "" {
			v.ToggleCategory(c)
		}
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		v.Page = page
	}
	return v
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}

	b.Catalog.Fetch(r.Context(), 1, catalogFetchLimit)

	view := viewFromQuery(r)
	pageItems, pageCount := view.CurrentPage(b.Catalog.Products())

	utils.WriteJSON(w, listingResponse{
		Products:   pageItems,
		Page:       view.Page,
		PageCount:  pageCount,
		Categories: listing.Categories,
	}, http.StatusOK)
}

func (h *Handler) featuredProducts(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}

	if len(b.Catalog.Products()) == 0 {
		b.Catalog.Fetch(r.Context(), 1, catalogFetchLimit)
	}

	category := r.URL.Query().Get("category")
	utils.WriteJSON(w, map[string]any{
		"products": b.Catalog.FeaturedByCategory(category),
	}, http.StatusOK)
}

func (h *Handler) deals(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}

	b.Catalog.FetchDeals(r.Context())
	utils.WriteJSON(w, map[string]any{"products": b.Catalog.Deals()}, http.StatusOK)
}

func (h *Handler) recentlyViewed(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}
	utils.WriteJSON(w, map[string]any{"products": b.Recent.Items()}, http.StatusOK)
}

func (h *Handler) recordView(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}

	product, ok := h.findProduct(r, b, chi.URLParam(r, "id"))
	if !ok {
		utils.WriteJSONError(w, "product not found", http.StatusNotFound)
		return
	}

	b.Recent.Record(r.Context(), product)
	utils.WriteJSON(w, map[string]any{"products": b.Recent.Items()}, http.StatusOK)
}

// findProduct looks an id up in the session's catalog and deals
// snapshots, fetching the catalog first if it is still empty.
func (h *Handler) findProduct(r *http.Request, b *Bundle, id string) (catalog.Product, bool) {
	if len(b.Catalog.Products()) == 0 {
		b.Catalog.Fetch(r.Context(), 1, catalogFetchLimit)
	}
	for _, p := range b.Catalog.Products() {
		if p.ID == id {
			return p, true
		}
	}
	for _, p := range b.Catalog.Deals() {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

// --- reviews ---

type reviewsResponse struct {
	Reviews       []review.Review `json:"reviews"`
	AverageRating float64         `json:"averageRating"`
}

func reviewsState(b *Bundle) reviewsResponse {
	return reviewsResponse{
		Reviews:       b.Reviews.Reviews(),
		AverageRating: b.Reviews.AverageRating(),
	}
}

func (h *Handler) productReviews(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}

	if err := b.Reviews.Fetch(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, reviewsState(b), http.StatusOK)
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}

	var body struct {
		Rating int    `json:"rating"`
		Text   string `json:"text"`
	}
	if err := decodeBody(r, &body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	productID := chi.URLParam(r, "id")
	if err := b.Reviews.Create(r.Context(), productID, body.Rating, body.Text); err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, reviewsState(b), http.StatusCreated)
}

func (h *Handler) deleteReview(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}

	if err := b.Reviews.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, reviewsState(b), http.StatusOK)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil || !requireAdmin(w, b) {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.WriteJSONError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	input := catalog.NewProduct{
		Name:        r.FormValue("name"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
	}
	input.Price, _ = strconv.ParseFloat(r.FormValue("price"), 64)
	input.Rating, _ = strconv.ParseFloat(r.FormValue("rating"), 64)
	input.Discount, _ = strconv.ParseFloat(r.FormValue("discount"), 64)

	images, err := formImages(r, "images")
	if err != nil {
		utils.WriteJSONError(w, "unreadable image upload", http.StatusBadRequest)
		return
	}

	created := b.Catalog.Create(r.Context(), b.Session.Token(), input, images)
	if created == nil {
		utils.WriteJSONError(w, "product was not created", http.StatusUnprocessableEntity)
		return
	}
	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil || !requireAdmin(w, b) {
		return
	}

	b.Catalog.Delete(r.Context(), b.Session.Token(), chi.URLParam(r, "id"))
	utils.WriteJSON(w, map[string]any{"products": b.Catalog.Products()}, http.StatusAccepted)
}

func (h *Handler) bulkUpload(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil || !requireAdmin(w, b) {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.WriteJSONError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteJSONError(w, "product file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		writeError(w, catalog.ErrUnsupportedFile)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		utils.WriteJSONError(w, "unreadable product file", http.StatusBadRequest)
		return
	}

	rows, err := catalog.ParseBulkCSV(data)
	if err != nil {
		writeError(w, err)
		return
	}

	images, err := formImages(r, "images")
	if err != nil {
		utils.WriteJSONError(w, "unreadable image upload", http.StatusBadRequest)
		return
	}

	if err := b.Catalog.BulkUpload(r.Context(), b.Session.Token(), rows, images); err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, map[string]any{"uploaded": len(rows)}, http.StatusCreated)
}

// formImages reads every file under one multipart field into memory.
func formImages(r *http.Request, field string) ([]catalog.ImageFile, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	var images []catalog.ImageFile
	for _, header := range r.MultipartForm.File[field] {
		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		images = append(images, catalog.ImageFile{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return images, nil
}

// --- cart ---

type cartResponse struct {
	Items        []cart.CartItem `json:"items"`
	TotalPrice   float64         `json:"totalPrice"`
	FinalPrice   float64         `json:"finalPrice"`
	DeliveryDate string          `json:"deliveryDate"`
}

func cartState(b *Bundle) cartResponse {
	return cartResponse{
		Items:        b.Cart.Items(),
		TotalPrice:   b.Cart.TotalPrice(),
		FinalPrice:   b.Cart.FinalPrice(),
		DeliveryDate: b.Cart.DeliveryDate(),
	}
}

func (h *Handler) cartState(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}

	b.Cart.Fetch(r.Context())
	utils.WriteJSON(w, cartState(b), http.StatusOK)
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}

	var body struct {
		ProductID string `json:"productId"`
	}
	if err := decodeBody(r, &body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	product, ok := h.findProduct(r, b, body.ProductID)
	if !ok {
		utils.WriteJSONError(w, "product not found", http.StatusNotFound)
		return
	}

	b.Cart.Add(r.Context(), product)
	utils.WriteJSON(w, cartState(b), http.StatusOK)
}

func (h *Handler) updateCartQuantity(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}

	var body struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := decodeBody(r, &body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := b.Cart.UpdateQuantity(r.Context(), body.ProductID, body.Quantity); err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, cartState(b), http.StatusOK)
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}

	if err := b.Cart.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, cartState(b), http.StatusOK)
}

// --- profile ---

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}

	if !b.Session.Authenticated() {
		writeError(w, session.ErrNotAuthenticated)
		return
	}

	profile, err := b.Users.FetchProfile(r.Context(), b.Session.Token())
	if err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, profile, http.StatusOK)
}

// --- admin back-office ---

func (h *Handler) adminOrders(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil || !requireAdmin(w, b) {
		return
	}

	if err := b.Orders.Fetch(r.Context(), b.Session.Token()); err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, map[string]any{"orders": b.Orders.Orders()}, http.StatusOK)
}

func (h *Handler) adminUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil || !requireAdmin(w, b) {
		return
	}

	var body struct {
		Status order.Status `json:"status"`
	}
	if err := decodeBody(r, &body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	orderID := chi.URLParam(r, "id")
	if err := b.Orders.UpdateStatus(r.Context(), b.Session.Token(), orderID, body.Status); err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, map[string]any{"orders": b.Orders.Orders()}, http.StatusOK)
}

func (h *Handler) adminUsers(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil || !requireAdmin(w, b) {
		return
	}

	if err := b.Users.Fetch(r.Context(), b.Session.Token()); err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, map[string]any{"users": b.Users.Users()}, http.StatusOK)
}

func (h *Handler) adminSetUserActive(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil || !requireAdmin(w, b) {
		return
	}

	var body struct {
		Active bool `json:"active"`
	}
	if err := decodeBody(r, &body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	userID := chi.URLParam(r, "id")
	if err := b.Users.SetActive(r.Context(), b.Session.Token(), userID, body.Active); err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, map[string]any{"users": b.Users.Users()}, http.StatusOK)
}

func (h *Handler) adminDeals(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil || !requireAdmin(w, b) {
		return
	}

	if err := b.Discounts.Fetch(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, map[string]any{"deals": b.Discounts.Deals()}, http.StatusOK)
}

func (h *Handler) adminUpdateDeal(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil || !requireAdmin(w, b) {
		return
	}

	var body struct {
		Discount *float64 `json:"discount"`
		Active   *bool    `json:"active"`
	}
	if err := decodeBody(r, &body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	productID := chi.URLParam(r, "id")
	token := b.Session.Token()
	if body.Discount != nil {
		if err := b.Discounts.SetDiscount(r.Context(), token, productID, *body.Discount); err != nil {
			writeError(w, err)
			return
		}
	}
	if body.Active != nil {
		if err := b.Discounts.SetActive(r.Context(), token, productID, *body.Active); err != nil {
			writeError(w, err)
			return
		}
	}
	utils.WriteJSON(w, map[string]any{"deals": b.Discounts.Deals()}, http.StatusOK)
}

func (h *Handler) adminAnalytics(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil || !requireAdmin(w, b) {
		return
	}

	if err := b.Analytics.Fetch(r.Context(), b.Session.Token()); err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, b.Analytics.Report(), http.StatusOK)
}

// --- payment ---

func (h *Handler) initializePayment(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}

	var params payment.InitializeParams
	if err := decodeBody(r, &params); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if params.CallbackURL == "" {
		params.CallbackURL = h.cfg.PaymentReturnURL
	}

	result, err := b.Payments.Initialize(r.Context(), b.Session.Token(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) verifyPayment(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}

	var body struct {
		Reference string `json:"reference"`
	}
	if err := decodeBody(r, &body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := b.Payments.Verify(r.Context(), b.Session.Token(), body.Reference)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, result, http.StatusOK)
}

// receipt renders the post-payment PDF receipt for download.
func (h *Handler) receipt(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}

	var details payment.OrderDetails
	if err := decodeBody(r, &details); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if details.OrderID == "" {
		utils.WriteJSONError(w, "orderId is required", http.StatusBadRequest)
		return
	}

	pdf, err := payment.Receipt(details, h.cfg.Currency, h.cfg.CurrencyLocale)
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to render receipt",
			zap.String("order_id", details.OrderID), zap.Error(err))
		utils.WriteJSONError(w, "failed to render receipt", http.StatusInternalServerError)
		return
	}

	// Optional server-side archive for reconciliation.
	if h.cfg.ReceiptOutDir != "" {
		name := filepath.Join(h.cfg.ReceiptOutDir, "receipt-"+details.OrderID+".pdf")
		if err := os.WriteFile(name, pdf, 0o644); err != nil {
			logger.FromCtx(r.Context()).Warn("failed to archive receipt",
				zap.String("path", name), zap.Error(err))
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="receipt.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// --- chat ---

func (h *Handler) chatMessage(w http.ResponseWriter, r *http.Request) {
	b := h.bundle(w, r)
	if b == nil {
		return
	}

	var body struct {
		Input string `json:"input"`
	}
	if err := decodeBody(r, &body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	reply, err := b.Chat.Send(r.Context(), body.Input)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, map[string]any{
		"response": reply,
		"messages": b.Chat.Messages(),
	}, http.StatusOK)
}
