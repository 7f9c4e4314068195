package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/bookstore/domain"
)

// AdminHandlers manages the book catalog
type AdminHandlers struct {
	catalog domain.CatalogService
	resp    *Responder
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(catalog domain.CatalogService, resp *Responder) *AdminHandlers {
	return &AdminHandlers{catalog: catalog, resp: resp}
}

// BookRequest carries the editable book fields
type BookRequest struct {
	Title       string   `json:"title" binding:"required"`
	BookImage   string   `json:"book_image" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Categories  []string `json:"categories" binding:"required,min=1"`
	Cost        float64  `json:"cost" binding:"gte=0"`
}

func (r BookRequest) input() domain.BookInput {
	return domain.BookInput{
		Title:       r.Title,
		BookImage:   r.BookImage,
		Description: r.Description,
		Categories:  r.Categories,
		Cost:        r.Cost,
	}
}

const invalidBookMessage = "Title, book image, description, and at least one category are required"

// AddBook creates a book
func (h *AdminHandlers) AddBook(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Fail(c, http.StatusBadRequest, invalidBookMessage)
		return
	}

	book, err := h.catalog.AddBook(c.Request.Context(), req.input())
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, http.StatusCreated, "Book added successfully", viewOf(book))
}

// ListBooks returns every book with full details
func (h *AdminHandlers) ListBooks(c *gin.Context) {
	books, err := h.catalog.ListBooks(c.Request.Context())
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.List(c, "Books retrieved successfully", viewsOf(books), len(books))
}

// GetBook returns the book named by :bookId
func (h *AdminHandlers) GetBook(c *gin.Context) {
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

// UpdateBook replaces the editable fields of :bookId
func (h *AdminHandlers) UpdateBook(c *gin.Context) {
	id, ok := parseID(c.Param("bookId"))
	if !ok {
		h.resp.Fail(c, http.StatusBadRequest, "Book ID is required")
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Fail(c, http.StatusBadRequest, invalidBookMessage)
		return
	}

	book, err := h.catalog.UpdateBook(c.Request.Context(), id, req.input())
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, http.StatusOK, "Book updated successfully", viewOf(book))
}

// DeleteBook removes :bookId
func (h *AdminHandlers) DeleteBook(c *gin.Context) {
	id, ok := parseID(c.Param("bookId"))
	if !ok {
		h.resp.Fail(c, http.StatusBadRequest, "Book ID is required")
		return
	}

	book, err := h.catalog.DeleteBook(c.Request.Context(), id)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, http.StatusOK, "Book deleted successfully", viewOf(book))
}
