package refdata

import (
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/rezonia/tariffmill/internal/model"
)

// partRow mirrors the parts_master table maintained by the import
// tooling. Ratios are stored as fractions in [0,1].
type partRow struct {
	PartNumber      string  `gorm:"column:part_number;primaryKey"`
	Description     string  `gorm:"column:description"`
	HTSCode         string  `gorm:"column:hts_code"`
	CountryOrigin   string  `gorm:"column:country_origin"`
	MID             string  `gorm:"column:mid"`
	SteelRatio      float64 `gorm:"column:steel_ratio"`
	AluminumRatio   float64 `gorm:"column:aluminum_ratio"`
	CopperRatio     float64 `gorm:"column:copper_ratio"`
	WoodRatio       float64 `gorm:"column:wood_ratio"`
	AutomotiveRatio float64 `gorm:"column:automotive_ratio"`
	MeltCountry     string  `gorm:"column:melt_country"`
	CastCountry     string  `gorm:"column:cast_country"`
	SmeltCountry    string  `gorm:"column:smelt_country"`
}

func (partRow) TableName() string { return "parts_master" }

// exclusionRow mirrors the section301_exclusions table.
type exclusionRow struct {
	HTSCode string `gorm:"column:hts_code;primaryKey"`
}

func (exclusionRow) TableName() string { return "section301_exclusions" }

// codeRow mirrors the declaration_codes table. Regulatory codes change
// independently of this core, so the mapping is data, not code.
type codeRow struct {
	Material    string `gorm:"column:material;primaryKey"`
	Code        string `gorm:"column:code"`
	Description string `gorm:"column:description"`
}

func (codeRow) TableName() string { return "declaration_codes" }

// Open opens the reference SQLite database read-only for this core.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, model.NewSnapshotError(path, "failed to open reference database", err)
	}
	return db, nil
}

// LoadSnapshot reads the full reference dataset from the database into
// an immutable snapshot.
func LoadSnapshot(db *gorm.DB) (*Snapshot, error) {
	var partRows []partRow
	if err := db.Find(&partRows).Error; err != nil {
		return nil, model.NewSnapshotError("parts_master", "failed to load parts", err)
	}

	var exclusionRows []exclusionRow
	if err := db.Find(&exclusionRows).Error; err != nil {
		return nil, model.NewSnapshotError("section301_exclusions", "failed to load exclusions", err)
	}

	var codeRows []codeRow
	if err := db.Find(&codeRows).Error; err != nil {
		return nil, model.NewSnapshotError("declaration_codes", "failed to load declaration codes", err)
	}

	parts := make([]model.PartRecord, 0, len(partRows))
	for _, r := range partRows {
		parts = append(parts, model.PartRecord{
			PartNumber:      r.PartNumber,
			Description:     r.Description,
			HTSCode:         r.HTSCode,
			CountryOfOrigin: r.CountryOrigin,
			MID:             r.MID,
			SteelRatio:      decimal.NewFromFloat(r.SteelRatio),
			AluminumRatio:   decimal.NewFromFloat(r.AluminumRatio),
			CopperRatio:     decimal.NewFromFloat(r.CopperRatio),
			WoodRatio:       decimal.NewFromFloat(r.WoodRatio),
			AutomotiveRatio: decimal.NewFromFloat(r.AutomotiveRatio),
			MeltCountry:     r.MeltCountry,
			CastCountry:     r.CastCountry,
			SmeltCountry:    r.SmeltCountry,
		})
	}

	exclusions := make([]string, 0, len(exclusionRows))
	for _, r := range exclusionRows {
		exclusions = append(exclusions, r.HTSCode)
	}

	codes := make([]model.DeclarationCode, 0, len(codeRows))
	for _, r := range codeRows {
		codes = append(codes, model.DeclarationCode{
			Material:    model.Material(r.Material),
			Code:        r.Code,
			Description: r.Description,
		})
	}

	return NewSnapshot(parts, exclusions, codes), nil
}

// OpenStore opens the database and loads the initial snapshot.
func OpenStore(path string) (*Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	snap, err := LoadSnapshot(db)
	if err != nil {
		return nil, err
	}
	return NewStore(snap), nil
}
