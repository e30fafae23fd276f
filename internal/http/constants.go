package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	PageHome        = "home"
	PageBreathe     = "breathe"
	PageMeditations = "meditations"
	PageDashboard   = "dashboard"
	PageCommunity   = "community"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// Cookie and form field names shared by handlers and middleware.
const (
	SessionCookieName  = "session_id"
	ThemeCookieName    = "theme"
	FlashCookieName    = "flash"
	ViewportWidthField = "viewport_width"
	CloseMenuField     = "close_menu"
)

// Fragment template names rendered by the component endpoints.
const (
	tmplHeader  = "header"
	tmplLanding = "landing-hero"
)

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageHome:        "home-content",
	PageBreathe:     "breathe-content",
	PageMeditations: "meditations-content",
	PageDashboard:   "dashboard-content",
	PageCommunity:   "community-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to home-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "home-content"
}
