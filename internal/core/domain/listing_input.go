package domain

import "io"

// ImageUpload - один файл из формы объявления.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// CreateListingInput - данные формы добавления объявления.
type CreateListingInput struct {
	House          House
	Cover          *ImageUpload
	InteriorImages []ImageUpload
	// Features заполняется, только если пользователь ввел все признаки для оценки.
	Features *HouseFeatures
}

// CreateListingResult - созданное объявление и итоговое flash-сообщение.
type CreateListingResult struct {
	House          House
	PredictedPrice *float64
	SkippedFiles   []string
	Flash          FlashMessage
}
