package catalog

import "github.com/salon/backend/internal/domain/shared"

// ProductCategory classifies catalog entries. Each category carries the
// two-letter prefix used when generating SKUs.
type ProductCategory string

const (
	CategoryHairCare     ProductCategory = "HAIR_CARE"
	CategorySkinCare     ProductCategory = "SKIN_CARE"
	CategoryNailCare     ProductCategory = "NAIL_CARE"
	CategoryStylingTools ProductCategory = "STYLING_TOOLS"
	CategoryColoring     ProductCategory = "COLORING"
	CategorySpaTreatment ProductCategory = "SPA_TREATMENT"
	CategoryMassage      ProductCategory = "MASSAGE"
	CategoryPackages     ProductCategory = "PACKAGES"
	CategoryAccessories  ProductCategory = "ACCESSORIES"
	CategoryOther        ProductCategory = "OTHER"
)

var categoryPrefixes = map[ProductCategory]string{
	CategoryHairCare:     "HC",
	CategorySkinCare:     "SC",
	CategoryNailCare:     "NC",
	CategoryStylingTools: "ST",
	CategoryColoring:     "CO",
	CategorySpaTreatment: "SP",
	CategoryMassage:      "MA",
	CategoryPackages:     "PK",
	CategoryAccessories:  "AC",
	CategoryOther:        "OT",
}

// AllCategories lists every product category in display order.
func AllCategories() []ProductCategory {
	return []ProductCategory{
		CategoryHairCare, CategorySkinCare, CategoryNailCare,
		CategoryStylingTools, CategoryColoring, CategorySpaTreatment,
		CategoryMassage, CategoryPackages, CategoryAccessories, CategoryOther,
	}
}

// SKUPrefix returns the two-letter prefix used for SKU generation
func (c ProductCategory) SKUPrefix() string {
	return categoryPrefixes[c]
}

// IsValid checks whether the category is one of the known values
func (c ProductCategory) IsValid() bool {
	_, ok := categoryPrefixes[c]
	return ok
}

// String returns the category code
func (c ProductCategory) String() string {
	return string(c)
}

func validateCategory(category ProductCategory) error {
	if !category.IsValid() {
		return shared.NewValidationError("category", "Unknown product category: "+string(category))
	}
	return nil
}

// ProductType distinguishes bookable services from physical goods.
type ProductType string

const (
	ProductTypeService  ProductType = "SERVICE"
	ProductTypePhysical ProductType = "PHYSICAL_PRODUCT"
	ProductTypePackage  ProductType = "PACKAGE"
)

// RequiresDuration reports whether products of this type must carry a
// service duration (services and packages are booked by time).
func (t ProductType) RequiresDuration() bool {
	return t == ProductTypeService || t == ProductTypePackage
}

// RequiresInventory reports whether products of this type track stock.
func (t ProductType) RequiresInventory() bool {
	return t == ProductTypePhysical
}

// String returns the type code
func (t ProductType) String() string {
	return string(t)
}

func validateProductType(t ProductType) error {
	switch t {
	case ProductTypeService, ProductTypePhysical, ProductTypePackage:
		return nil
	default:
		return shared.NewValidationError("type", "Product type must be SERVICE, PHYSICAL_PRODUCT or PACKAGE")
	}
}
