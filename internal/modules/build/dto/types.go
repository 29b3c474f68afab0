package dto

import "time"

type PlaceInput struct {
	Kind    string
	Name    string
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
	ZIndex  float64
}

type MoveInput struct {
	ID      string
	OffsetX float64
	OffsetY float64
}

type ItemOutput struct {
	ID       string
	Kind     string
	Name     string
	Width    float64
	Height   float64
	OffsetX  float64
	OffsetY  float64
	ZIndex   float64
	PlacedAt time.Time
}

type ListOutput struct {
	Items []ItemOutput
	// Cleared is set when a failed session wiped the canvas on this read.
	Cleared bool
}
