package view

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	navSessionName = "ytu-nav"
	navKeyPath     = "path"
	navKeyTab      = "tab"
)

// Navigation tabs.
const (
	TabHome          = "home"
	TabCourses       = "courses"
	TabLearningPaths = "learning-paths"
	TabDashboard     = "dashboard"
)

// NavItem is one entry of the top navigation bar.
type NavItem struct {
	Tab   string
	Label string
	Href  string
	Icon  Icon
}

// NavItems lists the navigation bar in display order.
var NavItems = []NavItem{
	{TabHome, "Home", "/", IconHome},
	{TabCourses, "Courses", "/courses", IconBookOpen},
	{TabLearningPaths, "Learning Paths", "/learning-paths", IconMap},
	{TabDashboard, "My Dashboard", "/dashboard", IconDashboard},
}

// NavState is what the navigation session remembers between requests.
type NavState struct {
	Tab  string
	Path string
}

// SetNav records the active tab and, when non-empty, the learning path the
// visitor looked at last.
func SetNav(c echo.Context, tab, path string) {
	sess, err := session.Get(navSessionName, c)
	if err != nil {
		return
	}
	sess.Values[navKeyTab] = tab
	if path != "" {
		sess.Values[navKeyPath] = path
	}
	_ = sess.Save(c.Request(), c.Response())
}

// GetNav reads the navigation session. Missing values are empty.
func GetNav(c echo.Context) NavState {
	sess, err := session.Get(navSessionName, c)
	if err != nil {
		return NavState{}
	}
	tab, _ := sess.Values[navKeyTab].(string)
	path, _ := sess.Values[navKeyPath].(string)
	return NavState{Tab: tab, Path: path}
}
