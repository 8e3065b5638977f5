package domain

import (
	"encoding/json"
	"testing"
)

func TestUploadResult_JSONShape(t *testing.T) {
	res := UploadResult{
		Filename:      "report.pdf",
		ExtractedText: NoTextFound,
		Persistence:   Persistence{Status: PersistSaved},
	}

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	want := `{"filename":"report.pdf","extracted_text":"No text found."}`
	if string(data) != want {
		t.Fatalf("got %s, want %s", data, want)
	}
}

func TestPersistence_Saved(t *testing.T) {
	if !(Persistence{Status: PersistSaved}).Saved() {
		t.Error("expected saved status to report Saved")
	}
	if (Persistence{Status: PersistFailed}).Saved() {
		t.Error("expected failed status not to report Saved")
	}
	if (Persistence{Status: PersistSkipped}).Saved() {
		t.Error("expected skipped status not to report Saved")
	}
}
