package httpx

import (
	"net/http"
	"time"

	"github.com/target/mindful-ui/internal/domain/breath"
	"github.com/target/mindful-ui/internal/ui"
)

const practiceWindow = 5 * time.Minute

// Index renders the landing page.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{Meta: PageMeta{
		Title:       "Mindful - Breathe, focus, rest",
		PageTitle:   "Home",
		CurrentPage: PageHome,
		Landing:     true,
	}})
}

// BreatheContent is the data behind the breathing exercise page.
type BreatheContent struct {
	Pattern  breath.Pattern
	Patterns []breath.Pattern
	// Unknown is set when the requested pattern was not recognized.
	Unknown bool
	Cycles  int
	Window  time.Duration
}

// Breathe renders a breathing pattern chosen with ?pattern=.
func (h *UIHandlers) Breathe(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{
			Title:       "Breathe - Mindful",
			PageTitle:   "Breathe",
			CurrentPage: PageBreathe,
		},
		Content: func(r *http.Request, _ *ui.View) any {
			key := r.URL.Query().Get("pattern")
			p, ok := breath.Lookup(key)
			return BreatheContent{
				Pattern:  p,
				Patterns: breath.Patterns(),
				Unknown:  key != "" && !ok,
				Cycles:   p.CyclesIn(practiceWindow),
				Window:   practiceWindow,
			}
		},
	})
}

// Meditation is one entry of the guided meditation catalog.
type Meditation struct {
	Title       string
	Minutes     int
	Description string
	Pattern     string
}

//nolint:gochecknoglobals // static catalog
var meditations = []Meditation{
	{Title: "Morning arrival", Minutes: 5, Description: "Settle in and set an intention for the day.", Pattern: "coherent"},
	{Title: "Focus reset", Minutes: 3, Description: "A short pause between tasks.", Pattern: "box"},
	{Title: "Body scan", Minutes: 10, Description: "Move attention slowly from head to toe.", Pattern: "coherent"},
	{Title: "Wind down", Minutes: 8, Description: "Slow the breath before sleep.", Pattern: "relax"},
}

// Meditations renders the guided meditation catalog.
func (h *UIHandlers) Meditations(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{
			Title:       "Meditations - Mindful",
			PageTitle:   "Meditations",
			CurrentPage: PageMeditations,
		},
		Content: func(*http.Request, *ui.View) any { return meditations },
	})
}

// DashboardContent greets the signed-in user with a suggested practice.
type DashboardContent struct {
	Name      string
	Suggested breath.Pattern
}

// Dashboard renders the signed-in home. Routed behind RequireAuthBrowser.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{
			Title:       "Dashboard - Mindful",
			PageTitle:   "Dashboard",
			CurrentPage: PageDashboard,
		},
		Content: func(r *http.Request, _ *ui.View) any {
			content := DashboardContent{Suggested: suggestedPattern(time.Now())}
			if s := GetSessionFromContext(r.Context()); s != nil {
				content.Name = s.Label()
			}
			return content
		},
	})
}

// suggestedPattern picks a calming pattern in the evening and box breathing otherwise.
func suggestedPattern(now time.Time) breath.Pattern {
	key := breath.DefaultKey
	if h := now.Hour(); h >= 20 || h < 5 {
		key = "relax"
	}
	p, _ := breath.Lookup(key)
	return p
}

// Community renders the community page.
func (h *UIHandlers) Community(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{Meta: PageMeta{
		Title:       "Community - Mindful",
		PageTitle:   "Community",
		CurrentPage: PageCommunity,
	}})
}
