package httphandler

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/niksmo/product-service/internal/core/domain"
	"github.com/niksmo/product-service/internal/core/port"
	"github.com/shopspring/decimal"
)

const (
	nameField     = "name"
	quantityField = "quantity"
	priceField    = "price"
	photoField    = "photo"
)

const (
	msgFetchFailed     = "Error fetching products"
	msgServerError     = "Server Error"
	msgInternalError   = "Internal Server Error"
	msgNotFound        = "Product not found"
	msgEmptyName       = "Name field cannot be empty"
	msgInvalidQuantity = "Invalid quantity"
	msgInvalidPrice    = "Invalid price"
	msgInvalidForm     = "Invalid form data"
	msgDeleted         = "Product deleted successfully"
	msgEdited          = "Product is edited successfully"
)

var errInvalidForm = errors.New("invalid form")

// GET    /getProduct          (200 OK, 500)
// POST   /createProduct       multipart: name, quantity, price, photo? (200 OK, 400, 500)
// DELETE /deleteProduct/:id   (200 OK, 404, 500)
// PUT    /editProduct/:id     multipart: name, price, quantity, photo? (200 OK, 400, 404, 500)

type ProductsHandler struct {
	service port.ProductsService
}

func RegisterProducts(r gin.IRouter, service port.ProductsService) {
	h := ProductsHandler{service}
	r.GET("/getProduct", h.GetProducts)
	r.POST("/createProduct", h.CreateProduct)
	r.DELETE("/deleteProduct/:id", h.DeleteProduct)
	r.PUT("/editProduct/:id", h.EditProduct)
}

// RegisterPhotos serves uploaded photos read only from dir.
func RegisterPhotos(r gin.IRouter, urlPath, dir string) {
	r.Static(urlPath, dir)
}

func (h ProductsHandler) GetProducts(c *gin.Context) {
	const op = "ProductsHandler.GetProducts"
	log := slog.With("op", op)

	ps, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		log.Error("failed to list products", "err", err)
		c.JSON(http.StatusInternalServerError, MessageResponse{msgFetchFailed})
		return
	}

	c.JSON(http.StatusOK, ProductsResponse{Products: fromDomain(ps)})
}

func (h ProductsHandler) CreateProduct(c *gin.Context) {
	const op = "ProductsHandler.CreateProduct"
	log := slog.With("op", op)

	in, msg, err := h.readInput(c)
	if err != nil {
		log.Warn("invalid input", "err", err)
		c.JSON(http.StatusBadRequest, MessageResponse{msg})
		return
	}

	photo, closePhoto, err := h.readPhoto(c)
	if err != nil {
		log.Warn("failed to read photo", "err", err)
		c.JSON(http.StatusBadRequest, MessageResponse{msgInvalidForm})
		return
	}
	defer closePhoto()

	id, err := h.service.CreateProduct(c.Request.Context(), in, photo)
	if err != nil {
		log.Error("failed to create product", "err", err)
		c.JSON(http.StatusInternalServerError, MessageResponse{msgServerError})
		return
	}

	log.Info("product created", "id", id)
	c.JSON(http.StatusOK, CreateProductResponse{Data: ProductID{id}})
}

func (h ProductsHandler) DeleteProduct(c *gin.Context) {
	const op = "ProductsHandler.DeleteProduct"
	log := slog.With("op", op)

	id, ok := h.productID(c)
	if !ok {
		c.JSON(http.StatusNotFound, MessageResponse{msgNotFound})
		return
	}

	err := h.service.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, MessageResponse{msgNotFound})
			return
		}
		log.Error("failed to delete product", "id", id, "err", err)
		c.JSON(http.StatusInternalServerError, MessageResponse{msgInternalError})
		return
	}

	log.Info("product deleted", "id", id)
	c.JSON(http.StatusOK, MessageResponse{msgDeleted})
}

func (h ProductsHandler) EditProduct(c *gin.Context) {
	const op = "ProductsHandler.EditProduct"
	log := slog.With("op", op)

	in, msg, err := h.readInput(c)
	if err != nil {
		log.Warn("invalid input", "err", err)
		c.JSON(http.StatusBadRequest, MessageResponse{msg})
		return
	}

	if in.Name == "" {
		c.JSON(http.StatusBadRequest, MessageResponse{msgEmptyName})
		return
	}

	id, ok := h.productID(c)
	if !ok {
		c.JSON(http.StatusNotFound, MessageResponse{msgNotFound})
		return
	}

	photo, closePhoto, err := h.readPhoto(c)
	if err != nil {
		log.Warn("failed to read photo", "err", err)
		c.JSON(http.StatusBadRequest, MessageResponse{msgInvalidForm})
		return
	}
	defer closePhoto()

	updatedID, err := h.service.UpdateProduct(c.Request.Context(), id, in, photo)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyName):
			c.JSON(http.StatusBadRequest, MessageResponse{msgEmptyName})
		case errors.Is(err, domain.ErrProductNotFound):
			c.JSON(http.StatusNotFound, MessageResponse{msgNotFound})
		default:
			log.Error("failed to update product", "id", id, "err", err)
			c.JSON(http.StatusInternalServerError, MessageResponse{msgInternalError})
		}
		return
	}

	log.Info("product updated", "id", updatedID)
	c.JSON(http.StatusOK, EditProductResponse{
		Message:        msgEdited,
		UpdatedProduct: ProductID{updatedID},
	})
}

// productID reports false for ids that cannot match any row.
func (ProductsHandler) productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// readInput returns the response message together with a parse error.
// JSON bodies are accepted as well as form data.
func (ProductsHandler) readInput(
	c *gin.Context,
) (in domain.ProductInput, msg string, err error) {
	if c.ContentType() == gin.MIMEJSON {
		var body ProductInput
		if err := c.ShouldBindJSON(&body); err != nil {
			return domain.ProductInput{}, msgInvalidForm, err
		}
		return domain.ProductInput(body), "", nil
	}

	in.Name = c.PostForm(nameField)

	in.Quantity, err = parseDecimal(c.PostForm(quantityField))
	if err != nil {
		return domain.ProductInput{}, msgInvalidQuantity, err
	}

	in.Price, err = parseDecimal(c.PostForm(priceField))
	if err != nil {
		return domain.ProductInput{}, msgInvalidPrice, err
	}
	return in, "", nil
}

// readPhoto returns nil photo when the request carries no file.
// The returned func closes the opened file and is never nil.
func (ProductsHandler) readPhoto(
	c *gin.Context,
) (*domain.Photo, func(), error) {
	noop := func() {}

	fh, err := c.FormFile(photoField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) ||
			errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, errors.Join(errInvalidForm, err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, errors.Join(errInvalidForm, err)
	}

	photo := &domain.Photo{Filename: fh.Filename, Content: f}
	return photo, closeFn(f), nil
}

func closeFn(f multipart.File) func() {
	return func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close uploaded file", "err", err)
		}
	}
}

// parseDecimal maps an absent field to SQL NULL.
func parseDecimal(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
