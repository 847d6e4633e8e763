package domain

// HouseFeatures - признаки дома, которые принимает модель оценки.
// Имена JSON совпадают с колонками обучающего набора.
type HouseFeatures struct {
	OverallQual          int     `json:"overall_qual"`
	GrLivArea            float64 `json:"gr_liv_area"`
	TotalBath            float64 `json:"TotalBath"`
	TotalSF              float64 `json:"TotalSF"`
	HouseAge             int     `json:"HouseAge"`
	RemodelAge           int     `json:"RemodelAge"`
	OverallQualGrLivArea float64 `json:"OverallQual_GrLivArea"`
}

// NewHouseFeatures заполняет производный признак OverallQual_GrLivArea.
func NewHouseFeatures(overallQual int, grLivArea, totalBath, totalSF float64, houseAge, remodelAge int) HouseFeatures {
	return HouseFeatures{
		OverallQual:          overallQual,
		GrLivArea:            grLivArea,
		TotalBath:            totalBath,
		TotalSF:              totalSF,
		HouseAge:             houseAge,
		RemodelAge:           remodelAge,
		OverallQualGrLivArea: float64(overallQual) * grLivArea,
	}
}

// HeuristicPrice - оценка на случай, когда модель недоступна.
func HeuristicPrice(f HouseFeatures) float64 {
	const base = 100000.0
	return base + f.GrLivArea*100.0 + f.TotalBath*20000.0 + float64(f.OverallQual)*15000.0
}
