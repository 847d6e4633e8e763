package domain

import "strings"

// Константы визуального поведения страниц. Фронтенд получает их через /ui/behavior.
const (
	CardHoverLift      = "-10px"
	AnchorScrollOffset = 80

	RevealThreshold  = 0.1
	RevealRootMargin = "0px 0px -50px 0px"
	RevealSelectors  = ".property-card, .cta-section, .hero"

	InputFilledColor = "#26a269"
	InputEmptyColor  = "#e0e0e0"

	InteriorImagesField = "interior_images"
	ImageAccept         = "image/*"
	MaxUploadBytes      = 16 << 20
)

// InputBorderColor - цвет рамки поля поиска в зависимости от введенного значения.
func InputBorderColor(value string) string {
	if strings.TrimSpace(value) != "" {
		return InputFilledColor
	}
	return InputEmptyColor
}

// ScrollTarget - позиция прокрутки к якорю с учетом фиксированной шапки.
func ScrollTarget(offsetTop int) int {
	return offsetTop - AnchorScrollOffset
}
