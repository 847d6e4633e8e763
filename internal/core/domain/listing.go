package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBedrooms     = 3
	DefaultBathrooms    = 2.0
	DefaultAreaSqm      = 150
	DefaultPropertyType = "House"
)

// House - объявление о продаже.
type House struct {
	ID           int64
	Title        string
	Price        string // как ввел владелец, например "€250,000"
	Location     string
	Description  string
	Image        string
	OwnerPhone   string
	OwnerEmail   string
	Bedrooms     int
	Bathrooms    float64
	AreaSqm      int
	PropertyType string
	Images       []string
	// OwnerID - автор объявления, nil для объявлений без владельца.
	OwnerID   *int64
	CreatedAt time.Time
}

// PriceAsFloat приводит текстовую цену к числу. Нераспознанная цена считается нулем.
func (h House) PriceAsFloat() float64 {
	v, err := ParsePrice(h.Price)
	if err != nil {
		return 0
	}
	return v
}

// ParsePrice убирает знак евро, разделители тысяч и пробелы.
func ParsePrice(raw string) (float64, error) {
	s := strings.ReplaceAll(raw, "€", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", raw, err)
	}
	return v, nil
}

// SearchFilters - параметры формы поиска.
type SearchFilters struct {
	City         string
	PropertyType string
	MinPrice     string
	MaxPrice     string
}

// Normalize обрезает пробелы во всех полях.
func (f SearchFilters) Normalize() SearchFilters {
	return SearchFilters{
		City:         strings.TrimSpace(f.City),
		PropertyType: strings.TrimSpace(f.PropertyType),
		MinPrice:     strings.TrimSpace(f.MinPrice),
		MaxPrice:     strings.TrimSpace(f.MaxPrice),
	}
}

// Description - человекочитаемое описание запроса. Пустая строка, если фильтров нет.
func (f SearchFilters) Description() string {
	var parts []string
	if f.City != "" {
		parts = append(parts, "location: "+f.City)
	}
	if f.MinPrice != "" {
		parts = append(parts, "min price: €"+f.MinPrice)
	}
	if f.MaxPrice != "" {
		parts = append(parts, "max price: €"+f.MaxPrice)
	}
	return strings.Join(parts, ", ")
}

// Announcement - сообщение кнопки поиска на главной странице.
func (f SearchFilters) Announcement() string {
	return fmt.Sprintf("Searching for properties in %s, type: %s, max price: %s", f.City, f.PropertyType, f.MaxPrice)
}

// SearchResult - результат поиска вместе с предупреждениями о некорректных фильтрах.
type SearchResult struct {
	Houses   []House
	Query    string
	Warnings []string
}

// SimilarListingsLimit - сколько других объявлений показывается на странице объявления.
const SimilarListingsLimit = 3

// ListingDetails - объявление и несколько других объявлений для блока "похожие".
type ListingDetails struct {
	House   House
	Similar []House
}
