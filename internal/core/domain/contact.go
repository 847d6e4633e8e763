package domain

const (
	ContactShowLabel = "Contact Info"
	ContactHideLabel = "Hide Contact Info"
)

// ContactPanel - блок с контактами владельца на странице объявления. По умолчанию скрыт.
type ContactPanel struct {
	Visible bool
}

func (p ContactPanel) Toggle() ContactPanel {
	return ContactPanel{Visible: !p.Visible}
}

// ButtonLabel - подпись кнопки, переключающей панель.
func (p ContactPanel) ButtonLabel() string {
	if p.Visible {
		return ContactHideLabel
	}
	return ContactShowLabel
}
