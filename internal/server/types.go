package server

import (
	"github.com/shopspring/decimal"

	"github.com/rezonia/tariffmill/internal/model"
)

// ProcessRequest is the request body for the process endpoint.
type ProcessRequest struct {
	Items          []model.LineItem `json:"items" binding:"required"`
	DeclaredTotal  decimal.Decimal  `json:"declared_total"`
	ManufacturerID string           `json:"manufacturer_id,omitempty"`
}

// ReloadResponse reports the snapshot installed by a reload.
type ReloadResponse struct {
	Parts      int    `json:"parts"`
	Exclusions int    `json:"exclusions"`
	LoadedAt   string `json:"loaded_at"`
}

// PartResponse wraps a single part lookup.
type PartResponse struct {
	Part model.PartRecord `json:"part"`
}

// PartSearchResponse is the response for part search.
type PartSearchResponse struct {
	Parts []model.PartRecord `json:"parts"`
	Count int                `json:"count"`
}

// CodesResponse lists the configured declaration codes.
type CodesResponse struct {
	Codes []model.DeclarationCode `json:"codes"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
