package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/you/bookstore/domain"
)

// CatalogHandlers serves books, purchases and collections to readers
type CatalogHandlers struct {
	catalog domain.CatalogService
	resp    *Responder
}

// NewCatalogHandlers creates new catalog handlers
func NewCatalogHandlers(catalog domain.CatalogService, resp *Responder) *CatalogHandlers {
	return &CatalogHandlers{catalog: catalog, resp: resp}
}

// PurchaseRequest represents a purchase order
type PurchaseRequest struct {
	BookID          uint   `json:"bookId" binding:"required"`
	CustomerName    string `json:"customerName" binding:"required"`
	CustomerAddress string `json:"customerAddress" binding:"required"`
	CustomerPhone   string `json:"customerPhone" binding:"required"`
}

// CollectionRequest represents a new collection
type CollectionRequest struct {
	UserID         uint   `json:"userId" binding:"required"`
	CollectionName string `json:"collection_name" binding:"required"`
}

// bookSummary is the listing shape of a book
type bookSummary struct {
	ID        uint   `json:"_id"`
	Title     string `json:"title"`
	BookImage string `json:"book_image"`
	IsFree    bool   `json:"isFree"`
	PriceTag  string `json:"priceTag"`
}

// bookView is the full shape of a book
type bookView struct {
	*domain.Book
	PriceTag string `json:"priceTag"`
}

func summarize(books []*domain.Book) []bookSummary {
	out := make([]bookSummary, 0, len(books))
	for _, b := range books {
		out = append(out, bookSummary{
			ID:        b.ID,
			Title:     b.Title,
			BookImage: b.BookImage,
			IsFree:    b.IsFree,
			PriceTag:  b.PriceTag(),
		})
	}
	return out
}

func viewOf(b *domain.Book) bookView {
	return bookView{Book: b, PriceTag: b.PriceTag()}
}

func viewsOf(books []*domain.Book) []bookView {
	out := make([]bookView, 0, len(books))
	for _, b := range books {
		out = append(out, viewOf(b))
	}
	return out
}

// ListBooks returns every book, newest first
func (h *CatalogHandlers) ListBooks(c *gin.Context) {
	books, err := h.catalog.ListBooks(c.Request.Context())
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.List(c, "Books retrieved successfully", summarize(books), len(books))
}

// ListFreeBooks returns books without a cost
func (h *CatalogHandlers) ListFreeBooks(c *gin.Context) {
	books, err := h.catalog.ListFreeBooks(c.Request.Context())
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.List(c, "Free books retrieved successfully", summarize(books), len(books))
}

// ListCategories returns the distinct book categories
func (h *CatalogHandlers) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.List(c, "Categories retrieved successfully", categories, len(categories))
}

// GetBook returns the book named by :bookId
func (h *CatalogHandlers) GetBook(c *gin.Context) {
	id, ok := parseID(c.Param("bookId"))
	if !ok {
		h.resp.Fail(c, http.StatusBadRequest, "Book ID is required")
		return
	}

	book, err := h.catalog.GetBook(c.Request.Context(), id)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, http.StatusOK, "Book retrieved successfully", viewOf(book))
}

// Purchase records an order for a single book
func (h *CatalogHandlers) Purchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Fail(c, http.StatusBadRequest, "Book ID, customer name, address, and phone are required")
		return
	}

	purchase, err := h.catalog.Purchase(c.Request.Context(), domain.PurchaseInput{
		BookID:          req.BookID,
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		CustomerPhone:   req.CustomerPhone,
	})
	if err != nil {
		h.resp.Error(c, err)
		return
	}

	h.resp.OK(c, http.StatusCreated, "Book purchase order created successfully", gin.H{
		"purchaseId":    purchase.ID,
		"orderNumber":   strconv.FormatInt(purchase.OrderNumber, 10),
		"bookTitle":     purchase.BookTitle,
		"customerName":  purchase.CustomerName,
		"customerPhone": purchase.CustomerPhone,
		"status":        purchase.Status,
	})
}

// ListCollections returns the collections owned by :userId
func (h *CatalogHandlers) ListCollections(c *gin.Context) {
	userID, ok := parseID(c.Param("userId"))
	if !ok {
		h.resp.Fail(c, http.StatusBadRequest, "User ID is required")
		return
	}

	collections, err := h.catalog.ListCollections(c.Request.Context(), userID)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.List(c, "Collections retrieved successfully", collections, len(collections))
}

// AddCollection creates an empty collection
func (h *CatalogHandlers) AddCollection(c *gin.Context) {
	var req CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Fail(c, http.StatusBadRequest, "User ID and collection name are required")
		return
	}

	collection, err := h.catalog.AddCollection(c.Request.Context(), req.UserID, req.CollectionName)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, http.StatusCreated, "Collection created successfully", collection)
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
