package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quotelens/testhelpers"
)

func TestHandleClientAnalytics_FullPage(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	upload := seedTestUpload(t, app)

	handler := HandleClientAnalytics(app)

	req := httptest.NewRequest(http.MethodGet, "/uploads/"+upload.Id+"/analytics", nil)
	req.SetPathValue("uploadId", upload.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body,
		"C-001",
		"C-002",
		"quotes.csv",
		"2 of 2 clients",
	)
	// The resubmitted project reconciles to a single won quote.
	testhelpers.AssertHTMLContains(t, body, "100.0%")
}

func TestHandleClientAnalytics_HTMXFragment(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	upload := seedTestUpload(t, app)

	handler := HandleClientAnalytics(app)

	req := httptest.NewRequest(http.MethodGet, "/uploads/"+upload.Id+"/analytics?q=C-002", nil)
	req.SetPathValue("uploadId", upload.Id)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "C-002", "1 of 2 clients")
	if strings.Contains(body, "<html") {
		t.Error("HTMX request should get a fragment, not the full page")
	}
	if strings.Contains(body, ">C-001<") {
		t.Error("filtered-out client C-001 should not appear")
	}
}

func TestHandleClientAnalytics_SegmentFilter(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	upload := seedTestUpload(t, app)

	handler := HandleClientAnalytics(app)

	// Both seeded clients are Low; the High filter leaves nothing.
	req := httptest.NewRequest(http.MethodGet, "/uploads/"+upload.Id+"/analytics?segment=High", nil)
	req.SetPathValue("uploadId", upload.Id)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "0 of 2 clients")
}

func TestHandleClientAnalytics_UploadNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleClientAnalytics(app)

	req := httptest.NewRequest(http.MethodGet, "/uploads/missing/analytics", nil)
	req.SetPathValue("uploadId", "missing")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleCompanyAnalytics(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	upload := seedTestUpload(t, app)

	handler := HandleCompanyAnalytics(app)

	req := httptest.NewRequest(http.MethodGet, "/uploads/"+upload.Id+"/companies", nil)
	req.SetPathValue("uploadId", upload.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Medline",
		"Gulf Pharma",
		"UAE",
		"KSA",
	)
}
