package dto

import "time"

type OwnedItemOutput struct {
	ID            string
	ItemID        string
	PurchaseTime  time.Time
	PurchasePrice int64
}

type CatalogItemOutput struct {
	ID          string
	Name        string
	Description string
	Price       int64
	Single      bool
	AppIcon     string
	Owned       int
}

type PurchaseInput struct {
	ItemID   string
	Quantity int
}

type PurchaseOutput struct {
	ItemID    string
	Quantity  int
	Spent     int64
	Remaining int64
	Items     []OwnedItemOutput
}
