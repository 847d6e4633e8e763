package domain

import (
	"fmt"
	"strings"
)

// FieldID - идентификатор поля формы предсказания (совпадает с id элемента на странице).
type FieldID string

const (
	FieldOverallQual FieldID = "overall_qual"
	FieldGrLivArea   FieldID = "gr_liv_area"
	FieldTotalBath   FieldID = "total_bath"
	FieldTotalSF     FieldID = "total_sf"
	FieldHouseAge    FieldID = "house_age"
	FieldRemodelAge  FieldID = "remodel_age"

	// FieldPrice - поле цены объявления, куда копируется предсказанная цена.
	FieldPrice FieldID = "price"
)

// PredictionFields - все обязательные поля в порядке их отправки.
var PredictionFields = []FieldID{
	FieldOverallQual,
	FieldGrLivArea,
	FieldTotalBath,
	FieldTotalSF,
	FieldHouseAge,
	FieldRemodelAge,
}

const (
	MissingFieldsNotice  = "Please fill all AI prediction fields first."
	UnknownErrorMessage  = "Unknown error"
	NoBodyPlaceholder    = "<no body>"
	PredictedPricePrefix = "Predicted Price: € "
)

// PredictionRequest - значения шести полей в том виде, в каком их ввел пользователь.
// Числовая валидация не выполняется, проверяется только заполненность.
type PredictionRequest struct {
	OverallQual string `json:"overall_qual"`
	GrLivArea   string `json:"gr_liv_area"`
	TotalBath   string `json:"total_bath"`
	TotalSF     string `json:"total_sf"`
	HouseAge    string `json:"house_age"`
	RemodelAge  string `json:"remodel_age"`
}

// NewPredictionRequest собирает запрос из значений, прочитанных по FieldID.
func NewPredictionRequest(values map[FieldID]string) PredictionRequest {
	return PredictionRequest{
		OverallQual: values[FieldOverallQual],
		GrLivArea:   values[FieldGrLivArea],
		TotalBath:   values[FieldTotalBath],
		TotalSF:     values[FieldTotalSF],
		HouseAge:    values[FieldHouseAge],
		RemodelAge:  values[FieldRemodelAge],
	}
}

// Value возвращает значение поля по его идентификатору.
func (r PredictionRequest) Value(id FieldID) string {
	switch id {
	case FieldOverallQual:
		return r.OverallQual
	case FieldGrLivArea:
		return r.GrLivArea
	case FieldTotalBath:
		return r.TotalBath
	case FieldTotalSF:
		return r.TotalSF
	case FieldHouseAge:
		return r.HouseAge
	case FieldRemodelAge:
		return r.RemodelAge
	}
	return ""
}

// MissingFields возвращает незаполненные поля. Пустой срез означает, что запрос можно отправлять.
func (r PredictionRequest) MissingFields() []FieldID {
	var missing []FieldID
	for _, id := range PredictionFields {
		if r.Value(id) == "" {
			missing = append(missing, id)
		}
	}
	return missing
}

// ResultKind - тег результата предсказания.
type ResultKind int

const (
	ResultPricePredicted ResultKind = iota + 1
	ResultPredictionFailed
)

// PredictionResult - явный размеченный результат: либо цена, либо сообщение об ошибке.
type PredictionResult struct {
	Kind    ResultKind
	Price   string
	Message string
}

func PricePredicted(price string) PredictionResult {
	return PredictionResult{Kind: ResultPricePredicted, Price: price}
}

func PredictionFailed(message string) PredictionResult {
	if message == "" {
		message = UnknownErrorMessage
	}
	return PredictionResult{Kind: ResultPredictionFailed, Message: message}
}

func (r PredictionResult) Succeeded() bool {
	return r.Kind == ResultPricePredicted
}

// DisplayText - текст для блока с результатом.
func (r PredictionResult) DisplayText() string {
	return PredictedPricePrefix + r.Price
}

// ErrorKind - классификация ошибок потока предсказания.
type ErrorKind string

const (
	ErrorKindValidation ErrorKind = "validation"
	ErrorKindTransport  ErrorKind = "transport"
	ErrorKindProtocol   ErrorKind = "protocol"
	ErrorKindParse      ErrorKind = "parse"
	ErrorKindSemantic   ErrorKind = "semantic"
)

// PredictionError несет достаточно контекста, чтобы разобраться в сбое после факта.
type PredictionError struct {
	Kind       ErrorKind
	StatusCode int
	Status     string // текст статуса без кода, например "Internal Server Error"
	Body       string
	Missing    []FieldID
	Err        error
}

func (e *PredictionError) Error() string {
	switch e.Kind {
	case ErrorKindValidation:
		return fmt.Sprintf("prediction request is incomplete: missing %s", joinFields(e.Missing))
	case ErrorKindTransport:
		return fmt.Sprintf("prediction request failed: %v", e.Err)
	case ErrorKindProtocol:
		return fmt.Sprintf("prediction API returned %d %s: %s", e.StatusCode, e.Status, e.Body)
	case ErrorKindParse:
		return fmt.Sprintf("failed to parse prediction response: %v", e.Err)
	case ErrorKindSemantic:
		return fmt.Sprintf("prediction failed: %s", e.Body)
	}
	return "prediction error"
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}

// Notice - текст блокирующего уведомления, которое видит пользователь.
func (e *PredictionError) Notice() string {
	switch e.Kind {
	case ErrorKindValidation:
		return MissingFieldsNotice
	case ErrorKindTransport:
		msg := "<unknown error>"
		if e.Err != nil {
			msg = e.Err.Error()
		}
		return "Error contacting prediction API: " + msg
	case ErrorKindProtocol:
		return fmt.Sprintf("Prediction API returned %d %s: %s", e.StatusCode, e.Status, e.Body)
	case ErrorKindParse:
		return "Failed to parse JSON from prediction API: " + e.Body
	case ErrorKindSemantic:
		return "Prediction failed: " + e.Body
	}
	return e.Error()
}

func joinFields(ids []FieldID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}

// PredictionOutcome - итог одного нажатия кнопки предсказания.
type PredictionOutcome struct {
	Sequence uint64
	Request  PredictionRequest
	Result   *PredictionResult
	Err      *PredictionError
	Notice   string
	// Stale - ответ пришел после более нового нажатия и не был применен к странице.
	Stale bool
}
