package menu

import "github.com/salon/backend/internal/domain/shared"

// MenuCategory classifies menu items. The three *_PACKAGES values are
// package categories; bridal and seasonal packages additionally require
// advance booking.
type MenuCategory string

const (
	MenuCategoryHaircuts       MenuCategory = "HAIRCUTS"
	MenuCategoryHairColoring   MenuCategory = "HAIR_COLORING"
	MenuCategoryHairTreatments MenuCategory = "HAIR_TREATMENTS"
	MenuCategoryStyling        MenuCategory = "STYLING"
	MenuCategoryNails          MenuCategory = "NAILS"
	MenuCategorySkincare       MenuCategory = "SKINCARE"
	MenuCategoryMassage        MenuCategory = "MASSAGE"
	MenuCategoryMakeup         MenuCategory = "MAKEUP"
	MenuCategoryWaxing         MenuCategory = "WAXING"
	MenuCategoryBridalPackages MenuCategory = "BRIDAL_PACKAGES"
	MenuCategorySpaPackages    MenuCategory = "SPA_PACKAGES"
	MenuCategorySeasonal       MenuCategory = "SEASONAL_PACKAGES"
)

// AllMenuCategories lists every menu category in display order.
func AllMenuCategories() []MenuCategory {
	return []MenuCategory{
		MenuCategoryHaircuts, MenuCategoryHairColoring, MenuCategoryHairTreatments,
		MenuCategoryStyling, MenuCategoryNails, MenuCategorySkincare,
		MenuCategoryMassage, MenuCategoryMakeup, MenuCategoryWaxing,
		MenuCategoryBridalPackages, MenuCategorySpaPackages, MenuCategorySeasonal,
	}
}

// IsPackage reports whether items in this category bundle multiple
// services
func (c MenuCategory) IsPackage() bool {
	switch c {
	case MenuCategoryBridalPackages, MenuCategorySpaPackages, MenuCategorySeasonal:
		return true
	default:
		return false
	}
}

// RequiresAdvanceBooking reports whether the category forces advance
// booking regardless of the item's own flag
func (c MenuCategory) RequiresAdvanceBooking() bool {
	return c == MenuCategoryBridalPackages || c == MenuCategorySeasonal
}

// IsValid checks whether the category is one of the known values
func (c MenuCategory) IsValid() bool {
	switch c {
	case MenuCategoryHaircuts, MenuCategoryHairColoring, MenuCategoryHairTreatments,
		MenuCategoryStyling, MenuCategoryNails, MenuCategorySkincare,
		MenuCategoryMassage, MenuCategoryMakeup, MenuCategoryWaxing,
		MenuCategoryBridalPackages, MenuCategorySpaPackages, MenuCategorySeasonal:
		return true
	default:
		return false
	}
}

// String returns the category code
func (c MenuCategory) String() string {
	return string(c)
}

func validateMenuCategory(category MenuCategory) error {
	if !category.IsValid() {
		return shared.NewValidationError("category", "Unknown menu category: "+string(category))
	}
	return nil
}
