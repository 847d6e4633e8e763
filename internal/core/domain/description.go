package domain

import (
	"fmt"
	"strings"
)

const (
	defaultDescriptionTitle    = "Luxury Residence"
	defaultDescriptionLocation = "a prestigious neighborhood"
	defaultDescriptionBedrooms = "4"
)

// DescriptionRequest - данные для текста объявления. Пустые поля заменяются значениями по умолчанию.
type DescriptionRequest struct {
	Title    string
	Location string
	Bedrooms string
}

// ListingDescription - шаблонный рекламный текст объявления.
func ListingDescription(req DescriptionRequest) string {
	title := firstNonEmpty(req.Title, defaultDescriptionTitle)
	location := firstNonEmpty(req.Location, defaultDescriptionLocation)
	bedrooms := firstNonEmpty(req.Bedrooms, defaultDescriptionBedrooms)

	return fmt.Sprintf("Welcome to %s, an architectural masterpiece nestled in the heart of %s. "+
		"Light cascades through floor-to-ceiling windows, illuminating %s serene bedroom retreats. "+
		"This is where timeless elegance meets modern sophistication, your forever home awaits.",
		title, location, bedrooms)
}

func firstNonEmpty(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return strings.TrimSpace(v)
}
