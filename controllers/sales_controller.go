package controllers

import (
	"errors"
	"sort"
	"time"

	"github.com/MOON-roa-png/BodegaMati/cart"
	"github.com/MOON-roa-png/BodegaMati/config"
	"github.com/MOON-roa-png/BodegaMati/models"
	"github.com/MOON-roa-png/BodegaMati/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Carts holds the per-session carts. main swaps in the redis-backed store
// when redis is configured.
var Carts cart.Store = cart.NewMemoryStore()

const cartCookie = "cart_session"

// cartSessionID returns the session id from the cart cookie, minting one on
// first use.
func cartSessionID(c *gin.Context) string {
	if sid, err := c.Cookie(cartCookie); err == nil && sid != "" {
		return sid
	}
	sid := uuid.NewString()
	c.SetCookie(cartCookie, sid, int((24 * time.Hour).Seconds()), "/", "", false, true)
	return sid
}

func cartState(ct *cart.Cart) gin.H {
	lines := ct.Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	return gin.H{"lines": lines, "total": ct.Total()}
}

type AddToCartInput struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Kind      string `json:"kind"`
}

// AddToCart snapshots the product name and sale price into the cart. The
// stock check here is advisory: stock can change before confirmation, which
// re-validates under lock.
func AddToCart(c *gin.Context) {
	var in AddToCartInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, 400, "Invalid payload", err)
		return
	}
	if in.Quantity <= 0 {
		respondError(c, &models.ValidationError{Field: "quantity", Msg: "must be greater than zero"})
		return
	}
	kind := models.SaleKind(in.Kind)
	if kind == "" {
		kind = models.SaleRetail
	}
	if kind != models.SaleRetail && kind != models.SaleWholesale {
		respondError(c, &models.ValidationError{Field: "kind", Msg: "must be retail or wholesale"})
		return
	}

	var prod models.Product
	if err := config.DB.First(&prod, in.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, &models.NotFoundError{Entity: "product", ID: in.ProductID})
			return
		}
		utils.Error(c, 500, "Failed to load product", err)
		return
	}
	if in.Quantity > prod.Stock {
		respondError(c, &models.InsufficientStockError{
			ProductID:   prod.ID,
			ProductName: prod.Name,
			Available:   prod.Stock,
			Requested:   in.Quantity,
		})
		return
	}

	sid := cartSessionID(c)
	ct, err := Carts.Get(c.Request.Context(), sid)
	if err != nil {
		utils.Error(c, 500, "Failed to load cart", err)
		return
	}
	if err := ct.Add(cart.Line{
		ProductID:   prod.ID,
		ProductName: prod.Name,
		UnitPrice:   prod.SalePrice,
		Quantity:    in.Quantity,
		Kind:        kind,
	}); err != nil {
		respondError(c, err)
		return
	}
	if err := Carts.Save(c.Request.Context(), sid, ct); err != nil {
		utils.Error(c, 500, "Failed to save cart", err)
		return
	}
	utils.Success(c, "Added to cart", cartState(ct))
}

func GetCart(c *gin.Context) {
	ct, err := Carts.Get(c.Request.Context(), cartSessionID(c))
	if err != nil {
		utils.Error(c, 500, "Failed to load cart", err)
		return
	}
	utils.Success(c, "Cart", cartState(ct))
}

type CartLineUpdateInput struct {
	Quantity int `json:"quantity"`
}

func UpdateCartLine(c *gin.Context) {
	index, err := pathIndex(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var in CartLineUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, 400, "Invalid payload", err)
		return
	}

	sid := cartSessionID(c)
	ct, err := Carts.Get(c.Request.Context(), sid)
	if err != nil {
		utils.Error(c, 500, "Failed to load cart", err)
		return
	}
	if err := ct.UpdateQuantity(index, in.Quantity); err != nil {
		respondError(c, err)
		return
	}
	if err := Carts.Save(c.Request.Context(), sid, ct); err != nil {
		utils.Error(c, 500, "Failed to save cart", err)
		return
	}
	utils.Success(c, "Cart line updated", cartState(ct))
}

// RemoveCartLine drops one line; indices of later lines shift down, so
// clients must re-render the cart rather than reuse stale indices.
func RemoveCartLine(c *gin.Context) {
	index, err := pathIndex(c)
	if err != nil {
		respondError(c, err)
		return
	}

	sid := cartSessionID(c)
	ct, err := Carts.Get(c.Request.Context(), sid)
	if err != nil {
		utils.Error(c, 500, "Failed to load cart", err)
		return
	}
	if err := ct.Remove(index); err != nil {
		respondError(c, err)
		return
	}
	if err := Carts.Save(c.Request.Context(), sid, ct); err != nil {
		utils.Error(c, 500, "Failed to save cart", err)
		return
	}
	utils.Success(c, "Cart line removed", cartState(ct))
}

func ClearCart(c *gin.Context) {
	if err := Carts.Delete(c.Request.Context(), cartSessionID(c)); err != nil {
		utils.Error(c, 500, "Failed to clear cart", err)
		return
	}
	utils.Success(c, "Cart cleared", cartState(&cart.Cart{}))
}

// ConfirmSale turns the session cart into a persisted sale. All referenced
// product rows are locked in ascending id order, every line is re-checked
// against the locked stock, and the sale, its lines and the stock
// decrements land in one transaction. Any failure leaves nothing behind.
func ConfirmSale(c *gin.Context) {
	sid := cartSessionID(c)
	ct, err := Carts.Get(c.Request.Context(), sid)
	if err != nil {
		utils.Error(c, 500, "Failed to load cart", err)
		return
	}
	if ct.Empty() {
		respondError(c, models.ErrEmptyCart)
		return
	}
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, 401, "Unauthorized", err)
		return
	}

	var sale models.Sale
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		ids := make([]uint, 0, len(ct.Lines))
		seen := make(map[uint]bool, len(ct.Lines))
		for _, l := range ct.Lines {
			if !seen[l.ProductID] {
				seen[l.ProductID] = true
				ids = append(ids, l.ProductID)
			}
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		// Ascending id order keeps concurrent multi-item confirmations
		// from deadlocking against each other.
		var prods []models.Product
		if err := tx.Clauses(clauseUpdateLock()).
			Where("id IN ?", ids).Order("id").Find(&prods).Error; err != nil {
			return err
		}
		byID := make(map[uint]*models.Product, len(prods))
		for i := range prods {
			byID[prods[i].ID] = &prods[i]
		}

		// Validate every line before writing anything. Totals come from
		// the cart's snapshot prices, not a fresh catalog read.
		var total int64
		for _, l := range ct.Lines {
			p, ok := byID[l.ProductID]
			if !ok {
				return &models.NotFoundError{Entity: "product", ID: l.ProductID}
			}
			if l.Quantity > p.Stock {
				return &models.InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Available:   p.Stock,
					Requested:   l.Quantity,
				}
			}
			total += l.UnitPrice * int64(l.Quantity)
		}

		kind := ct.Lines[0].Kind
		if kind == "" {
			kind = models.SaleRetail
		}
		sale = models.Sale{Total: total, Kind: kind, CreatedBy: uid}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}
		for _, l := range ct.Lines {
			line := models.SaleLine{
				SaleID:    sale.ID,
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			if err := applySaleStock(tx, byID[l.ProductID], l.Quantity, sale.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if err := Carts.Delete(c.Request.Context(), sid); err != nil {
		config.Log.Warnw("failed to clear cart after sale", "sale_id", sale.ID, "err", err)
	}

	if err := config.DB.Preload("Lines").First(&sale, sale.ID).Error; err != nil {
		utils.Error(c, 500, "Failed to reload sale", err)
		return
	}
	utils.Success(c, "Sale confirmed", sale)
}
