package port

import "listing-portal/internal/core/domain"

// InputElement - поле ввода на странице.
type InputElement interface {
	Value() string
	SetValue(value string)
}

// ResultBoxElement - блок, в котором показывается предсказанная цена.
type ResultBoxElement interface {
	Show()
	SetText(text string)
}

// PageElements - явный доступ к элементам страницы. Отсутствующий элемент
// возвращается с ok == false, и вызывающий код обязан обработать этот случай.
type PageElements interface {
	Input(id domain.FieldID) (InputElement, bool)
	ResultBox() (ResultBoxElement, bool)
	// Notify показывает блокирующее уведомление.
	Notify(message string)
}
