package domain

import (
	"fmt"
	"time"

	apperrors "focusflow/internal/platform/errors"
)

const (
	BreakPassShort = "break-1"
	BreakPassLong  = "break-5"
)

// OwnedItem is one purchased unit. Consumables are removed on use; cosmetics
// stay forever.
type OwnedItem struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"item_id"`
	PurchaseTime  time.Time `json:"purchase_time"`
	PurchasePrice int64     `json:"purchase_price"`
}

type CatalogItem struct {
	ID          string
	Name        string
	Description string
	Price       int64
	// Single items can be owned at most once.
	Single bool
	// AppIcon is the alternate icon unlocked by the item, if any.
	AppIcon string
}

var Catalog = []CatalogItem{
	{ID: BreakPassShort, Name: "1-minute Break Pass", Description: "Take a 1 minute break during a focus session. Applied automatically when you leave.", Price: 30},
	{ID: BreakPassLong, Name: "5-minute Break Pass", Description: "Take a 5 minute break during a focus session. Applied automatically when you leave.", Price: 200},
	{ID: "icon-rainbow", Name: "Rainbow App Icon", Description: "Joyful and diverse like a burst of color.", Price: 60, Single: true, AppIcon: "AppIconRainbow"},
	{ID: "icon-coral", Name: "Coral App Icon", Description: "Vibrant and warm like an ocean sunset.", Price: 60, Single: true, AppIcon: "AppIconCoral"},
	{ID: "icon-frost", Name: "Frost App Icon", Description: "Cool and crisp like a winter morning.", Price: 60, Single: true, AppIcon: "AppIconFrost"},
	{ID: "icon-violet", Name: "Violet App Icon", Description: "Mysterious and regal like a twilight sky.", Price: 60, Single: true, AppIcon: "AppIconViolet"},
	{ID: "icon-emerald", Name: "Emerald App Icon", Description: "Fresh and lively like a lush forest.", Price: 60, Single: true, AppIcon: "AppIconEmerald"},
}

func FindItem(id string) (CatalogItem, bool) {
	for _, item := range Catalog {
		if item.ID == id {
			return item, true
		}
	}
	return CatalogItem{}, false
}

// Cost is only meaningful for a quantity CheckPurchase accepted.
func (c CatalogItem) Cost(quantity int) int64 {
	return int64(quantity) * c.Price
}

// CheckPurchase applies the store rules: at least one unit, single items at
// most once, and the cost must not exceed the balance.
func (c CatalogItem) CheckPurchase(owned, quantity int, balance int64) error {
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", apperrors.ErrInvalidInput)
	}
	if c.Single && (owned > 0 || quantity > 1) {
		return fmt.Errorf("%w: %s", apperrors.ErrPurchaseLimit, c.ID)
	}
	// Compared by division so a huge quantity cannot wrap the cost.
	if c.Price > 0 && int64(quantity) > balance/c.Price {
		return fmt.Errorf("%w: need %d x %d, have %d", apperrors.ErrInsufficientCoins, quantity, c.Price, balance)
	}
	return nil
}

// Filter returns the items of kind in insertion order.
func Filter(items []OwnedItem, kind string) []OwnedItem {
	out := []OwnedItem{}
	for _, item := range items {
		if item.ItemID == kind {
			out = append(out, item)
		}
	}
	return out
}
