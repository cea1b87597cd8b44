package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"raceprep/internal/analysis"
	"raceprep/internal/config"
	"raceprep/internal/service"
	"raceprep/internal/store"
)

func setupTestApp(t *testing.T) (*App, *service.PlanService) {
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

	app := NewApp(svc, config.DisplayConfig{DistanceUnit: "km"})
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 200})
	feed(app, app.Init())
	return app, svc
}

// feed runs cmd synchronously and hands its message to the app
func feed(a *App, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	_, next := a.Update(cmd())
	return next
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestGenerateFromForm(t *testing.T) {
	app, svc := setupTestApp(t)

	if err := svc.SetField(analysis.FieldRaceName, "Lakeside 10K"); err != nil {
		t.Fatalf("SetField() error = %v", err)
	}
	if err := svc.SetField(analysis.FieldDistance, "10"); err != nil {
		t.Fatalf("SetField() error = %v", err)
	}

	_, cmd := app.Update(keys("g"))
	feed(app, cmd)

	if app.screen != ScreenReport {
		t.Fatalf("screen = %v, want report", app.screen)
	}
	view := app.View()
	for _, want := range []string{"Lakeside 10K", "Time Estimate", "Pacing Strategy", "Hydration"} {
		if !strings.Contains(view, want) {
			t.Errorf("report view missing %q", want)
		}
	}
}

func TestGenerateWithoutDistanceStaysOnForm(t *testing.T) {
	app, _ := setupTestApp(t)

	_, cmd := app.Update(keys("g"))
	feed(app, cmd)

	if app.screen != ScreenForm {
		t.Fatalf("screen = %v, want form", app.screen)
	}
	if !strings.Contains(app.View(), "race distance is required") {
		t.Error("form view should show the validation error")
	}
}

func TestEditFieldCapturesNavigationKeys(t *testing.T) {
	app, svc := setupTestApp(t)

	// Third field is the distance
	app.Update(keys("j"))
	app.Update(keys("j"))
	app.Update(enter)
	if !app.form.Editing() {
		t.Fatal("enter should start editing")
	}

	// Digits are typed into the field, not used for navigation
	app.Update(keys("21"))
	if app.screen != ScreenForm {
		t.Fatalf("screen = %v, want form while editing", app.screen)
	}

	_, cmd := app.Update(enter)
	feed(app, feed(app, cmd))

	fields, err := svc.StoredFields()
	if err != nil {
		t.Fatalf("StoredFields() error = %v", err)
	}
	if fields[analysis.FieldDistance] != "21" {
		t.Errorf("distance = %q, want 21", fields[analysis.FieldDistance])
	}
	if !strings.Contains(app.View(), "17%") {
		t.Error("form view should show 17% completeness")
	}
}

func TestPostRaceScreen(t *testing.T) {
	app, svc := setupTestApp(t)

	_, cmd := app.Update(keys("3"))
	feed(app, cmd)
	if !strings.Contains(app.View(), "Generate a report") {
		t.Error("post-race view should ask for a report first")
	}

	if _, err := svc.GenerateFromFields(map[string]string{
		analysis.FieldDistance: "10",
		analysis.FieldPB10K:    "50:00",
	}); err != nil {
		t.Fatalf("GenerateFromFields() error = %v", err)
	}

	_, cmd = app.Update(keys("3"))
	feed(app, cmd)

	app.Update(enter)
	app.Update(keys("49:00"))
	_, cmd = app.Update(enter)
	feed(app, cmd)

	view := app.View()
	if !strings.Contains(view, "faster") {
		t.Errorf("post-race view should report a faster finish:\n%s", view)
	}

	latest, err := svc.LatestReport()
	if err != nil {
		t.Fatalf("LatestReport() error = %v", err)
	}
	if _, err := svc.PostRaceResult(latest.ID); err != nil {
		t.Errorf("PostRaceResult() error = %v, want saved result", err)
	}
}

func TestHistoryOpensReport(t *testing.T) {
	app, svc := setupTestApp(t)

	for _, name := range []string{"Spring 5K", "Autumn Half"} {
		dist := "5"
		if name == "Autumn Half" {
			dist = "21.0975"
		}
		if _, err := svc.GenerateFromFields(map[string]string{
			analysis.FieldRaceName: name,
			analysis.FieldDistance: dist,
		}); err != nil {
			t.Fatalf("GenerateFromFields() error = %v", err)
		}
	}

	_, cmd := app.Update(keys("4"))
	feed(app, cmd)
	if len(app.history.summaries) != 2 {
		t.Fatalf("history = %d rows, want 2", len(app.history.summaries))
	}

	// Newest first, so the second row is the 5K
	app.Update(keys("j"))
	_, cmd = app.Update(enter)
	feed(app, feed(app, cmd))

	if app.screen != ScreenReport {
		t.Fatalf("screen = %v, want report", app.screen)
	}
	if !strings.Contains(app.View(), "Spring 5K") {
		t.Error("report view should show the selected report")
	}
}

func TestHelpToggle(t *testing.T) {
	app, _ := setupTestApp(t)

	app.Update(keys("?"))
	if app.screen != ScreenHelp {
		t.Fatalf("screen = %v, want help", app.screen)
	}
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if app.screen != ScreenForm {
		t.Errorf("screen = %v, want form after esc", app.screen)
	}
}
