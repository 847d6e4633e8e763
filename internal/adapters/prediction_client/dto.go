package prediction_client

import "encoding/json"

// predictPriceRequest - тело POST /predict_price. Значения передаются строками как есть.
type predictPriceRequest struct {
	OverallQual string `json:"overall_qual"`
	GrLivArea   string `json:"gr_liv_area"`
	TotalBath   string `json:"total_bath"`
	TotalSF     string `json:"total_sf"`
	HouseAge    string `json:"house_age"`
	RemodelAge  string `json:"remodel_age"`
}

// predictPriceResponse - ответ эндпоинта. Поля хранятся сырыми токенами JSON,
// чтобы показать их пользователю без изменений.
type predictPriceResponse struct {
	PredictedPrice json.RawMessage `json:"predicted_price"`
	Error          json.RawMessage `json:"error"`
}
