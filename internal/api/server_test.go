package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"raceprep/internal/analysis"
	"raceprep/internal/config"
	"raceprep/internal/service"
	"raceprep/internal/store"
)

func setupTestServer(t *testing.T) http.Handler {
	t.Helper()

	db, err := store.Open(store.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	fixed := time.Date(2026, 6, 7, 6, 45, 0, 0, time.UTC)
	engine := analysis.NewEngine(func() time.Time { return fixed })
	svc := service.NewPlanService(db, engine, config.DefaultsConfig{Surface: "Road", Experience: "Intermediate"}, nil)
	return NewServer("127.0.0.1:0", svc, nil).Router()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return v
}

func createReport(t *testing.T, h http.Handler, fields map[string]string) store.StoredReport {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/v1/reports", CreateReportRequest{Fields: fields})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /reports status = %d, body %s", rec.Code, rec.Body.String())
	}
	return decodeJSON[store.StoredReport](t, rec)
}

func TestCreateReport(t *testing.T) {
	h := setupTestServer(t)

	report := createReport(t, h, map[string]string{
		analysis.FieldRaceName: "Riverside 10K",
		analysis.FieldDistance: "10",
		analysis.FieldPB10K:    "50:00",
	})

	if report.ID == "" {
		t.Error("report id is empty")
	}
	if report.Report.TimeEstimate.Realistic != "50:00" {
		t.Errorf("Realistic = %q, want 50:00", report.Report.TimeEstimate.Realistic)
	}
	if report.Report.HealthAnalysis.RiskLevel != analysis.RiskLow {
		t.Errorf("RiskLevel = %v, want Low", report.Report.HealthAnalysis.RiskLevel)
	}
}

func TestCreateReportErrors(t *testing.T) {
	h := setupTestServer(t)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"empty form", nil, http.StatusBadRequest},
		{"distance too far", CreateReportRequest{Fields: map[string]string{analysis.FieldDistance: "300"}}, http.StatusBadRequest},
		{"unknown field", CreateReportRequest{Fields: map[string]string{analysis.FieldDistance: "10", "pet": "cat"}}, http.StatusBadRequest},
		{"malformed body", "not an object", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/v1/reports", tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			resp := decodeJSON[ErrorResponse](t, rec)
			if resp.Error == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestStoredFormFlow(t *testing.T) {
	h := setupTestServer(t)

	for key, value := range map[string]string{
		analysis.FieldDistance: "5",
		analysis.FieldPB5K:     "25:00",
	} {
		rec := do(t, h, http.MethodPut, "/api/v1/fields/"+key, SetFieldRequest{Value: value})
		if rec.Code != http.StatusNoContent {
			t.Fatalf("PUT /fields/%s status = %d", key, rec.Code)
		}
	}

	rec := do(t, h, http.MethodPut, "/api/v1/fields/shoe_size", SetFieldRequest{Value: "44"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("PUT unknown field status = %d, want 400", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/fields", nil)
	fields := decodeJSON[FieldsResponse](t, rec)
	if fields.Fields[analysis.FieldDistance] != "5" {
		t.Errorf("distance = %q, want 5", fields.Fields[analysis.FieldDistance])
	}
	if fields.Summary.Completeness != 17 {
		t.Errorf("Completeness = %d, want 17", fields.Summary.Completeness)
	}

	// No fields in the body uses the stored form
	report := createReport(t, h, nil)
	if report.Report.TimeEstimate.Realistic != "25:00" {
		t.Errorf("Realistic = %q, want 25:00", report.Report.TimeEstimate.Realistic)
	}
}

func TestGetReports(t *testing.T) {
	h := setupTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/v1/reports/latest", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("latest without reports status = %d, want 404", rec.Code)
	}

	first := createReport(t, h, map[string]string{analysis.FieldRaceName: "First", analysis.FieldDistance: "5"})
	second := createReport(t, h, map[string]string{analysis.FieldRaceName: "Second", analysis.FieldDistance: "10"})

	rec = do(t, h, http.MethodGet, "/api/v1/reports/latest", nil)
	latest := decodeJSON[store.StoredReport](t, rec)
	if latest.ID != second.ID {
		t.Errorf("latest = %q, want %q", latest.ID, second.ID)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/reports/"+first.ID, nil)
	got := decodeJSON[store.StoredReport](t, rec)
	if got.Report.Input.Race.Name != "First" {
		t.Errorf("race name = %q, want First", got.Report.Input.Race.Name)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/reports", nil)
	history := decodeJSON[[]store.ReportSummary](t, rec)
	if len(history) != 2 || history[0].ID != second.ID {
		t.Errorf("history = %+v, want newest first", history)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/reports/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing report status = %d, want 404", rec.Code)
	}

	rec = do(t, h, http.MethodDelete, "/api/v1/reports/"+first.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("DELETE status = %d, want 204", rec.Code)
	}
	rec = do(t, h, http.MethodDelete, "/api/v1/reports/"+first.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second DELETE status = %d, want 404", rec.Code)
	}
}

func TestPostRace(t *testing.T) {
	h := setupTestServer(t)
	report := createReport(t, h, map[string]string{
		analysis.FieldDistance: "10",
		analysis.FieldPB10K:    "50:00",
	})
	path := "/api/v1/reports/" + report.ID + "/post-race"

	rec := do(t, h, http.MethodGet, path, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET before save status = %d, want 404", rec.Code)
	}

	rec = do(t, h, http.MethodPost, path, PostRaceRequest{ActualTime: "52:00"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST post-race status = %d, body %s", rec.Code, rec.Body.String())
	}
	result := decodeJSON[analysis.PostRaceResult](t, rec)
	if result.WasFaster || result.DifferencePercentage != 4 {
		t.Errorf("result = %+v, want 4%% slower", result)
	}

	rec = do(t, h, http.MethodGet, path, nil)
	saved := decodeJSON[analysis.PostRaceResult](t, rec)
	if saved.ActualTime != "52:00" {
		t.Errorf("saved ActualTime = %q, want 52:00", saved.ActualTime)
	}

	rec = do(t, h, http.MethodPost, path, PostRaceRequest{ActualTime: "later"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad time status = %d, want 400", rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/api/v1/reports/missing/post-race", PostRaceRequest{ActualTime: "52:00"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing report status = %d, want 404", rec.Code)
	}
}

func TestMsgPackFormat(t *testing.T) {
	h := setupTestServer(t)
	report := createReport(t, h, map[string]string{
		analysis.FieldDistance:   "15",
		analysis.FieldExperience: "Beginner",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/"+report.ID+"?format=msgpack", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "application/x-msgpack" {
		t.Fatalf("Content-Type = %q, want application/x-msgpack", ct)
	}

	var got store.StoredReport
	dec := msgpack.NewDecoder(rec.Body)
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&got); err != nil {
		t.Fatalf("decoding msgpack: %v", err)
	}
	if got.ID != report.ID {
		t.Errorf("ID = %q, want %q", got.ID, report.ID)
	}
	if got.Report.HealthAnalysis.RiskLevel != analysis.RiskHigh {
		t.Errorf("RiskLevel = %v, want High", got.Report.HealthAnalysis.RiskLevel)
	}
}

func TestMsgPackRequest(t *testing.T) {
	h := setupTestServer(t)

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(CreateReportRequest{Fields: map[string]string{analysis.FieldDistance: "5"}}); err != nil {
		t.Fatalf("encoding msgpack: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", &buf)
	req.Header.Set("Content-Type", "application/x-msgpack")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
}
