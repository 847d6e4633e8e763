package rest

import (
	"time"

	"listing-portal/internal/adapters/pagestate"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/pricefmt"
)

// ErrorResponse - стандартная структура для ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PredictPriceResponse - ответ /predict_price: либо цена, либо ошибка.
type PredictPriceResponse struct {
	PredictedPrice *float64 `json:"predicted_price,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// PredictionFlowRequest - состояние формы в момент нажатия кнопки предсказания.
// Отсутствующий ключ в inputs означает отсутствующий элемент на странице.
type PredictionFlowRequest struct {
	Inputs    map[string]string `json:"inputs"`
	ResultBox *bool             `json:"result_box,omitempty"` // nil - блок есть
}

type PredictionFlowResponse struct {
	Sequence  uint64             `json:"sequence"`
	Stale     bool               `json:"stale"`
	Notice    string             `json:"notice,omitempty"`
	ErrorKind string             `json:"error_kind,omitempty"`
	Price     string             `json:"predicted_price,omitempty"`
	Page      pagestate.Snapshot `json:"page"`
}

type HouseResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Price          string    `json:"price"`
	PriceFormatted string    `json:"price_formatted"`
	Location       string    `json:"location"`
	Description    string    `json:"description"`
	Image          string    `json:"image,omitempty"`
	Bedrooms       int       `json:"bedrooms"`
	Bathrooms      float64   `json:"bathrooms"`
	AreaSqm        int       `json:"area_sqm"`
	PropertyType   string    `json:"property_type"`
	Images         []string  `json:"interior_images"`
	OwnerID        *int64    `json:"owner_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func toHouseResponse(h domain.House) HouseResponse {
	images := h.Images
	if images == nil {
		images = []string{}
	}
	return HouseResponse{
		ID:             h.ID,
		Title:          h.Title,
		Price:          h.Price,
		PriceFormatted: pricefmt.GroupDigits(h.Price),
		Location:       h.Location,
		Description:    h.Description,
		Image:          h.Image,
		Bedrooms:       h.Bedrooms,
		Bathrooms:      h.Bathrooms,
		AreaSqm:        h.AreaSqm,
		PropertyType:   h.PropertyType,
		Images:         images,
		OwnerID:        h.OwnerID,
		CreatedAt:      h.CreatedAt,
	}
}

func toHouseResponses(houses []domain.House) []HouseResponse {
	out := make([]HouseResponse, 0, len(houses))
	for _, h := range houses {
		out = append(out, toHouseResponse(h))
	}
	return out
}

type SearchResponse struct {
	Houses       []HouseResponse `json:"houses"`
	SearchQuery  *string         `json:"search_query"`
	Warnings     []string        `json:"warnings"`
	Announcement string          `json:"announcement"`
}

// ContactPanelResponse - контакты владельца видны только в раскрытой панели.
type ContactPanelResponse struct {
	Visible     bool   `json:"visible"`
	ButtonLabel string `json:"button_label"`
	Phone       string `json:"owner_phone,omitempty"`
	Email       string `json:"owner_email,omitempty"`
}

type ListingDetailsResponse struct {
	House   HouseResponse        `json:"house"`
	Contact ContactPanelResponse `json:"contact"`
	Similar []HouseResponse      `json:"similar_houses"`
}

type CreateListingResponse struct {
	House          HouseResponse `json:"house"`
	PredictedPrice *float64      `json:"predicted_price,omitempty"`
	SkippedFiles   []string      `json:"skipped_files"`
	Flash          FlashResponse `json:"flash"`
}

type FlashResponse struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Text      string    `json:"text"`
	State     string    `json:"state"`
	Opacity   float64   `json:"opacity"`
	CreatedAt time.Time `json:"created_at"`
}

func toFlashResponse(m domain.FlashMessage, now time.Time) FlashResponse {
	return FlashResponse{
		ID:        m.ID.String(),
		Category:  string(m.Category),
		Text:      m.Text,
		State:     string(m.StateAt(now)),
		Opacity:   m.Opacity(now),
		CreatedAt: m.CreatedAt,
	}
}

type ThemeResponse struct {
	Dark      bool   `json:"dark"`
	BodyClass string `json:"body_class"`
	Icon      string `json:"icon"`
}

func toThemeResponse(t domain.Theme) ThemeResponse {
	return ThemeResponse{Dark: t.Dark, BodyClass: t.BodyClass(), Icon: t.Icon()}
}

type RevealOptionsResponse struct {
	Threshold  float64 `json:"threshold"`
	RootMargin string  `json:"root_margin"`
	Selectors  string  `json:"selectors"`
}

type UIBehaviorResponse struct {
	CardHoverLift       string                `json:"card_hover_lift"`
	AnchorScrollOffset  int                   `json:"anchor_scroll_offset"`
	Reveal              RevealOptionsResponse `json:"reveal"`
	InputFilledColor    string                `json:"input_filled_color"`
	InputEmptyColor     string                `json:"input_empty_color"`
	FlashAutoDismissMs  int64                 `json:"flash_auto_dismiss_ms"`
	FlashFadeOutMs      int64                 `json:"flash_fade_out_ms"`
	InteriorImagesField string                `json:"interior_images_field"`
	ImageAccept         string                `json:"image_accept"`
	MaxUploadBytes      int64                 `json:"max_upload_bytes"`
}

type DescriptionResponse struct {
	Description string `json:"description"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

// AccountResponse - ответ регистрации и входа.
type AccountResponse struct {
	User  UserResponse  `json:"user"`
	Flash FlashResponse `json:"flash"`
}

type ProfileResponse struct {
	User      UserResponse    `json:"user"`
	Houses    []HouseResponse `json:"houses"`
	Favorites []HouseResponse `json:"favorites"`
}

type FavoriteStatusResponse struct {
	IsFavorite bool `json:"is_favorite"`
}

type FavoriteActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
