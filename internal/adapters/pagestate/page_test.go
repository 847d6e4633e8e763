package pagestate

import (
	"testing"

	"listing-portal/internal/core/domain"
)

func TestPageElements(t *testing.T) {
	var hooked []string
	page := New(map[domain.FieldID]string{
		domain.FieldOverallQual: "7",
		domain.FieldPrice:       "",
	}, WithNoticeHook(func(msg string) { hooked = append(hooked, msg) }))

	in, ok := page.Input(domain.FieldOverallQual)
	if !ok || in.Value() != "7" {
		t.Fatalf("overall_qual input = %v, %v", in, ok)
	}
	if _, ok := page.Input(domain.FieldTotalSF); ok {
		t.Error("absent input reported as present")
	}

	price, _ := page.Input(domain.FieldPrice)
	price.SetValue("123456")

	box, ok := page.ResultBox()
	if !ok {
		t.Fatal("result box should exist by default")
	}
	box.Show()
	box.SetText("Predicted Price: € 123456")

	page.Notify("hello")

	snap := page.Snapshot()
	if snap.Inputs["price"] != "123456" {
		t.Errorf("price = %q", snap.Inputs["price"])
	}
	if snap.ResultBox == nil || !snap.ResultBox.Visible || snap.ResultBox.Text != "Predicted Price: € 123456" {
		t.Errorf("result box = %+v", snap.ResultBox)
	}
	if len(snap.Notices) != 1 || len(hooked) != 1 || hooked[0] != "hello" {
		t.Errorf("notices = %v, hooked = %v", snap.Notices, hooked)
	}
}

func TestPageWithoutResultBox(t *testing.T) {
	page := New(nil, WithoutResultBox())
	if _, ok := page.ResultBox(); ok {
		t.Error("result box should be absent")
	}
	snap := page.Snapshot()
	if snap.ResultBox != nil {
		t.Error("snapshot should omit result box")
	}
	if snap.Notices == nil {
		t.Error("notices should be an empty list, not nil")
	}
}
