package rest

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
	"listing-portal/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type ListingsHandler struct {
	searchUC usecases_port.SearchListingsUseCasePort
	getUC    usecases_port.GetListingUseCasePort
	createUC usecases_port.CreateListingUseCasePort
	deleteUC usecases_port.DeleteListingUseCasePort
	flashes  port.FlashStorePort
	now      func() time.Time
}

func NewListingsHandler(
	searchUC usecases_port.SearchListingsUseCasePort,
	getUC usecases_port.GetListingUseCasePort,
	createUC usecases_port.CreateListingUseCasePort,
	deleteUC usecases_port.DeleteListingUseCasePort,
	flashes port.FlashStorePort,
) *ListingsHandler {
	return &ListingsHandler{
		searchUC: searchUC,
		getUC:    getUC,
		createUC: createUC,
		deleteUC: deleteUC,
		flashes:  flashes,
		now:      time.Now,
	}
}

// Search обрабатывает GET /search и GET /houses
func (h *ListingsHandler) Search(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Search"})

	q := r.URL.Query()
	filters := domain.SearchFilters{
		City:         q.Get("city"),
		PropertyType: q.Get("property_type"),
		MinPrice:     q.Get("min_price"),
		MaxPrice:     q.Get("max_price"),
	}

	result, err := h.searchUC.Execute(r.Context(), filters)
	if err != nil {
		logger.Error("Search listings use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to search listings")
		return
	}

	sessionID := SessionFromContext(r.Context())
	for _, warning := range result.Warnings {
		h.flashes.Push(sessionID, domain.NewFlashMessage(domain.FlashWarning, warning, h.now()))
	}

	resp := SearchResponse{
		Houses:       toHouseResponses(result.Houses),
		Warnings:     result.Warnings,
		Announcement: filters.Normalize().Announcement(),
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}
	if result.Query != "" {
		resp.SearchQuery = &result.Query
	}
	RespondWithJSON(w, http.StatusOK, resp)
}

// GetListing обрабатывает GET /houses/{id}?contact=shown
func (h *ListingsHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetListing"})

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing ID format")
		return
	}

	details, err := h.getUC.Execute(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Listing not found")
			return
		}
		logger.Error("Get listing use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve listing")
		return
	}

	panel := domain.ContactPanel{Visible: r.URL.Query().Get("contact") == "shown"}
	contact := ContactPanelResponse{Visible: panel.Visible, ButtonLabel: panel.ButtonLabel()}
	if panel.Visible {
		contact.Phone = details.House.OwnerPhone
		contact.Email = details.House.OwnerEmail
	}

	RespondWithJSON(w, http.StatusOK, ListingDetailsResponse{
		House:   toHouseResponse(details.House),
		Contact: contact,
		Similar: toHouseResponses(details.Similar),
	})
}

func (h *ListingsHandler) pushFlash(r *http.Request, category domain.FlashCategory, text string) {
	h.flashes.Push(SessionFromContext(r.Context()), domain.NewFlashMessage(category, text, h.now()))
}

// CreateListing обрабатывает POST /houses (multipart/form-data). Только для вошедших.
func (h *ListingsHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateListing"})

	user := UserFromContext(r.Context())
	if user == nil {
		h.pushFlash(r, domain.FlashWarning, "Please login to add a property")
		WriteJSONError(w, http.StatusUnauthorized, "Please login to add a property")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxUploadBytes)
	if err := r.ParseMultipartForm(domain.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteJSONError(w, http.StatusRequestEntityTooLarge, "Upload exceeds 16 MB limit")
			return
		}
		logger.Warn("Invalid multipart form", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	input := domain.CreateListingInput{
		House: domain.House{
			Title:        strings.TrimSpace(r.FormValue("title")),
			Price:        strings.TrimSpace(r.FormValue("price")),
			Location:     strings.TrimSpace(r.FormValue("location")),
			Description:  strings.TrimSpace(r.FormValue("description")),
			OwnerPhone:   strings.TrimSpace(r.FormValue("owner_phone")),
			OwnerEmail:   strings.TrimSpace(r.FormValue("owner_email")),
			Bedrooms:     formInt(r, "bedrooms", domain.DefaultBedrooms),
			Bathrooms:    formFloat(r, "bathrooms", domain.DefaultBathrooms),
			AreaSqm:      formInt(r, "area_sqm", domain.DefaultAreaSqm),
			PropertyType: formString(r, "property_type", domain.DefaultPropertyType),
			OwnerID:      &user.ID,
		},
		Features: featuresFromForm(r),
	}
	if input.House.Title == "" || input.House.Location == "" {
		WriteJSONError(w, http.StatusBadRequest, "Title and location are required")
		return
	}

	var openFiles []multipart.File
	defer func() {
		for _, f := range openFiles {
			f.Close()
		}
	}()
	open := func(fh *multipart.FileHeader) (domain.ImageUpload, bool) {
		f, err := fh.Open()
		if err != nil {
			logger.Warn("Failed to open uploaded file", port.Fields{"file": fh.Filename, "error": err.Error()})
			return domain.ImageUpload{}, false
		}
		openFiles = append(openFiles, f)
		return domain.ImageUpload{Filename: fh.Filename, Content: f}, true
	}

	if covers := r.MultipartForm.File["image"]; len(covers) > 0 && covers[0].Filename != "" {
		if upload, ok := open(covers[0]); ok {
			input.Cover = &upload
		}
	}
	for _, fh := range r.MultipartForm.File[domain.InteriorImagesField] {
		if fh.Filename == "" {
			continue
		}
		if upload, ok := open(fh); ok {
			input.InteriorImages = append(input.InteriorImages, upload)
		}
	}

	result, err := h.createUC.Execute(r.Context(), input)
	if err != nil {
		logger.Error("Create listing use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to create listing")
		return
	}

	h.flashes.Push(SessionFromContext(r.Context()), result.Flash)

	skipped := result.SkippedFiles
	if skipped == nil {
		skipped = []string{}
	}
	RespondWithJSON(w, http.StatusCreated, CreateListingResponse{
		House:          toHouseResponse(result.House),
		PredictedPrice: result.PredictedPrice,
		SkippedFiles:   skipped,
		Flash:          toFlashResponse(result.Flash, h.now()),
	})
}

// DeleteListing обрабатывает DELETE /houses/{id}. Удаляет владелец или администратор.
func (h *ListingsHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteListing"})

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing ID format")
		return
	}

	user := UserFromContext(r.Context())
	if user == nil {
		h.pushFlash(r, domain.FlashWarning, "Please login to access this page.")
		WriteJSONError(w, http.StatusUnauthorized, "Please login to access this page.")
		return
	}

	err = h.deleteUC.Execute(r.Context(), *user, id)
	switch {
	case err == nil:
		flash := domain.NewFlashMessage(domain.FlashSuccess, "Property deleted successfully!", h.now())
		h.flashes.Push(SessionFromContext(r.Context()), flash)
		RespondWithJSON(w, http.StatusOK, toFlashResponse(flash, h.now()))
	case errors.Is(err, domain.ErrListingNotFound):
		WriteJSONError(w, http.StatusNotFound, "Listing not found")
	case errors.Is(err, domain.ErrForbidden):
		h.pushFlash(r, domain.FlashDanger, "You can only delete your own properties!")
		WriteJSONError(w, http.StatusForbidden, "You can only delete your own properties!")
	default:
		logger.Error("Delete listing use case failed", err, nil)
		h.pushFlash(r, domain.FlashDanger, "Error deleting property. Please try again.")
		WriteJSONError(w, http.StatusInternalServerError, "Error deleting property. Please try again.")
	}
}

// featuresFromForm читает признаки оценки так же терпимо, как форма:
// пустое или некорректное значение равно нулю. Если не заполнено ни одно
// поле, оценка не нужна и возвращается nil.
func featuresFromForm(r *http.Request) *domain.HouseFeatures {
	filled := false
	for _, id := range domain.PredictionFields {
		if strings.TrimSpace(r.FormValue(string(id))) != "" {
			filled = true
			break
		}
	}
	if !filled {
		return nil
	}

	f := domain.NewHouseFeatures(
		formInt(r, string(domain.FieldOverallQual), 0),
		formFloat(r, string(domain.FieldGrLivArea), 0),
		formFloat(r, string(domain.FieldTotalBath), 0),
		formFloat(r, string(domain.FieldTotalSF), 0),
		formInt(r, string(domain.FieldHouseAge), 0),
		formInt(r, string(domain.FieldRemodelAge), 0),
	)
	return &f
}

// Describe обрабатывает POST /ai_description
func (h *ListingsHandler) Describe(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)).Decode(&body); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	req := domain.DescriptionRequest{
		Title:    rawText(body["title"]),
		Location: rawText(body["location"]),
		Bedrooms: rawText(body["bedrooms"]),
	}
	RespondWithJSON(w, http.StatusOK, DescriptionResponse{Description: domain.ListingDescription(req)})
}

// rawText - строка JSON без кавычек, число как есть, null и отсутствие - пустая строка.
func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
