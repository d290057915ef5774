package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bookhive/order_picker_service/internal/notify"
	"github.com/bookhive/order_picker_service/internal/picker"
	"github.com/bookhive/order_picker_service/internal/search"
	"github.com/bookhive/order_picker_service/internal/selection"
	"github.com/bookhive/order_picker_service/internal/session"
	"github.com/bookhive/order_picker_service/internal/source"
)

type openSessionRequest struct {
	AdminName string `json:"adminName"`

	// Edit flow: pre-seed from an existing order.
	CustomerID string   `json:"customerId"`
	BookIDs    []string `json:"bookIds"`

	// Per-screen policy; nil keeps the default (show all on empty query).
	EmptyQueryShowsAll *bool `json:"emptyQueryShowsAll"`
}

// OpenSession creates a picker session, loads both catalogs and returns
// the session id. A failed load still opens the session; the client shows
// a retry affordance and calls reload.
func OpenSession(c *gin.Context) {
	var req openSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	auth, err := session.FromBearer(c.GetHeader("Authorization"), req.AdminName)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization bearer token is required"})
		return
	}

	cfg := PickerConfig
	if req.EmptyQueryShowsAll != nil && !*req.EmptyQueryShowsAll {
		cfg.BookQuery.EmptyQuery = search.MatchNone
		cfg.UserQuery.EmptyQuery = search.MatchNone
	}

	s := picker.NewSession(uuid.NewString(), auth, NewSource(auth.Token), notify.NewZapNotifier(Logger), cfg)
	if req.CustomerID != "" || len(req.BookIDs) > 0 {
		s.Seed(req.CustomerID, req.BookIDs...)
	}

	loadErr := s.LoadCatalogs()
	Registry.Put(s)

	books, users := s.CatalogSizes()
	resp := gin.H{"id": s.ID, "books": books, "users": users}
	if name := s.Auth().AdminName; name != "" {
		resp["admin"] = name
	}
	if loadErr != nil {
		Logger.Warn("Catalog load failed on session open",
			zap.String("session", s.ID), zap.Error(loadErr))
		resp["loadError"] = "Failed to load catalog"
	}
	c.JSON(http.StatusCreated, resp)
}

// ReloadCatalogs retries a failed catalog load, bypassing cached
// snapshots.
func ReloadCatalogs(c *gin.Context) {
	s, ok := lookupSession(c)
	if !ok {
		return
	}
	if err := s.ReloadCatalogs(); err != nil {
		if errors.Is(err, source.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please log in again"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load catalog"})
		return
	}
	books, users := s.CatalogSizes()
	c.JSON(http.StatusOK, gin.H{"books": books, "users": users})
}

// SearchBooks returns the filtered book catalog for the live query.
// Already-selected books carry a selected flag for the badge.
func SearchBooks(c *gin.Context) {
	s, ok := lookupSession(c)
	if !ok {
		return
	}
	query := c.Query("q")
	results := s.SearchBooks(query)
	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"count":   len(results),
		"results": toRows(results),
	})
}

// SearchUsers returns the filtered user catalog for the live query.
func SearchUsers(c *gin.Context) {
	s, ok := lookupSession(c)
	if !ok {
		return
	}
	query := c.Query("q")
	results := s.SearchUsers(query)
	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"count":   len(results),
		"results": toRows(results),
	})
}

type addBookRequest struct {
	ID string `json:"id" binding:"required"`
}

// AddBook appends a book to the selection. Duplicates get 409 and change
// nothing; the client shows "Book already added" as a transient notice.
func AddBook(c *gin.Context) {
	s, ok := lookupSession(c)
	if !ok {
		return
	}
	var req addBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Book id is required"})
		return
	}

	e, err := s.AddBook(req.ID)
	var dup *selection.DuplicateSelectionError
	switch {
	case errors.As(err, &dup):
		c.JSON(http.StatusConflict, gin.H{"error": "Book already added"})
	case errors.Is(err, picker.ErrUnknownEntity):
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add book"})
	default:
		c.JSON(http.StatusOK, gin.H{
			"message":  fmt.Sprintf("%q added", e.Display["title"]),
			"selected": s.SelectionCount(),
		})
	}
}

// RemoveBook drops a book from the selection. Idempotent: removing an
// absent id still answers 204.
func RemoveBook(c *gin.Context) {
	s, ok := lookupSession(c)
	if !ok {
		return
	}
	s.RemoveBook(c.Param("bookId"))
	c.Status(http.StatusNoContent)
}

// GetSelection returns the selected books in insertion order plus the
// chosen customer. Dangling references come back as placeholder rows.
func GetSelection(c *gin.Context) {
	s, ok := lookupSession(c)
	if !ok {
		return
	}

	books := s.SelectedBooks()
	rows := make([]entityJSON, len(books))
	for i, e := range books {
		rows[i] = toEntityJSON(e, true)
	}

	resp := gin.H{"count": len(rows), "books": rows}
	if customer, ok := s.Customer(); ok {
		resp["customer"] = toEntityJSON(customer, true)
	}
	c.JSON(http.StatusOK, resp)
}

type selectCustomerRequest struct {
	ID string `json:"id" binding:"required"`
}

// SelectCustomer sets the order's customer.
func SelectCustomer(c *gin.Context) {
	s, ok := lookupSession(c)
	if !ok {
		return
	}
	var req selectCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User id is required"})
		return
	}

	e, err := s.SelectCustomer(req.ID)
	if errors.Is(err, picker.ErrUnknownEntity) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	name := e.Display["userName"]
	if name == "" {
		name = e.Display["email"]
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Selected: %s", name),
		"customer": toEntityJSON(e, true),
	})
}

func ClearCustomer(c *gin.Context) {
	s, ok := lookupSession(c)
	if !ok {
		return
	}
	s.ClearCustomer()
	c.Status(http.StatusNoContent)
}

type submitRequest struct {
	Status    string `json:"status"`
	Notes     string `json:"notes"`
	OrderDate string `json:"orderDate"`
}

// SubmitOrder sends the order upstream. Validation failures answer 400
// with the message the dashboard toasts; upstream failures leave the
// selection intact so the user can retry.
func SubmitOrder(c *gin.Context) {
	s, ok := lookupSession(c)
	if !ok {
		return
	}
	var req submitRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	err := s.Submit(c.Request.Context(), picker.OrderDetails{
		Status:    req.Status,
		Notes:     req.Notes,
		OrderDate: req.OrderDate,
	})
	switch {
	case errors.Is(err, picker.ErrNoCustomer):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a customer"})
	case errors.Is(err, picker.ErrEmptySelection):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please add at least one book"})
	case errors.Is(err, picker.ErrNotesTooLong), errors.Is(err, picker.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, source.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please log in again"})
	case err != nil:
		Logger.Error("Order submission failed", zap.String("session", s.ID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Order created successfully"})
	}
}

// CloseSession cancels in-flight loads and discards the session state.
func CloseSession(c *gin.Context) {
	Registry.Remove(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func lookupSession(c *gin.Context) (*picker.Session, bool) {
	s, ok := Registry.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return nil, false
	}
	return s, true
}

func toRows(results []picker.Result) []entityJSON {
	rows := make([]entityJSON, len(results))
	for i, r := range results {
		rows[i] = toEntityJSON(r.Entity, r.Selected)
	}
	return rows
}
