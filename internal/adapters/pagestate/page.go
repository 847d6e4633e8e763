package pagestate

import (
	"sync"

	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
)

// Page - состояние страницы в памяти: поля ввода, блок с ценой и уведомления.
// Используется HTTP-обработчиком потока предсказания и CLI.
type Page struct {
	mu      sync.Mutex
	inputs  map[domain.FieldID]string
	box     *boxState
	notices []string
	onNote  func(string)
}

type boxState struct {
	visible bool
	text    string
}

type Option func(*Page)

// WithoutResultBox - страница без блока предсказанной цены.
func WithoutResultBox() Option {
	return func(p *Page) { p.box = nil }
}

// WithNoticeHook вызывается на каждое уведомление, например для печати в stderr.
func WithNoticeHook(hook func(string)) Option {
	return func(p *Page) { p.onNote = hook }
}

// New создает страницу. Только перечисленные в inputs поля существуют на странице.
func New(inputs map[domain.FieldID]string, opts ...Option) *Page {
	p := &Page{
		inputs: make(map[domain.FieldID]string, len(inputs)),
		box:    &boxState{},
	}
	for id, v := range inputs {
		p.inputs[id] = v
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Page) Input(id domain.FieldID) (port.InputElement, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.inputs[id]; !ok {
		return nil, false
	}
	return &inputElement{page: p, id: id}, true
}

func (p *Page) ResultBox() (port.ResultBoxElement, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.box == nil {
		return nil, false
	}
	return &resultBoxElement{page: p}, true
}

func (p *Page) Notify(message string) {
	p.mu.Lock()
	p.notices = append(p.notices, message)
	hook := p.onNote
	p.mu.Unlock()

	if hook != nil {
		hook(message)
	}
}

type inputElement struct {
	page *Page
	id   domain.FieldID
}

func (e *inputElement) Value() string {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	return e.page.inputs[e.id]
}

func (e *inputElement) SetValue(value string) {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	e.page.inputs[e.id] = value
}

type resultBoxElement struct {
	page *Page
}

func (e *resultBoxElement) Show() {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	e.page.box.visible = true
}

func (e *resultBoxElement) SetText(text string) {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	e.page.box.text = text
}

// ResultBoxSnapshot - состояние блока с ценой.
type ResultBoxSnapshot struct {
	Visible bool   `json:"visible"`
	Text    string `json:"text"`
}

// Snapshot - копия состояния страницы для ответа клиенту.
type Snapshot struct {
	Inputs    map[string]string  `json:"inputs"`
	ResultBox *ResultBoxSnapshot `json:"result_box,omitempty"`
	Notices   []string           `json:"notices"`
}

func (p *Page) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Snapshot{
		Inputs:  make(map[string]string, len(p.inputs)),
		Notices: append([]string{}, p.notices...),
	}
	for id, v := range p.inputs {
		s.Inputs[string(id)] = v
	}
	if p.box != nil {
		s.ResultBox = &ResultBoxSnapshot{Visible: p.box.visible, Text: p.box.text}
	}
	return s
}
