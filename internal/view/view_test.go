package view

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cmp "maragu.dev/gomponents"

	"github.com/nfrund/ytu/internal/catalog"
	"github.com/nfrund/ytu/internal/diagram"
	"github.com/nfrund/ytu/internal/layout"
)

func render(t *testing.T, n cmp.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, n.Render(&buf))
	return buf.String()
}

func frontendSnapshot(t *testing.T) diagram.Snapshot {
	t.Helper()
	p, err := catalog.Default().Path("frontend")
	require.NoError(t, err)
	return diagram.Static(p, layout.Default(), 1000, 1280)
}

func TestPage_NavbarMarksActiveTab(t *testing.T) {
	html := render(t, Page("Courses", TabCourses, cmp.Text("body")))

	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
	assert.Contains(t, html, "<title>Courses - YT University</title>")
	for _, item := range NavItems {
		assert.Contains(t, html, `href="`+item.Href+`"`)
	}
	assert.Contains(t, html, `title="Courses" aria-current="page"`)
	assert.NotContains(t, html, `title="Home" aria-current="page"`)
	assert.Equal(t, 1, strings.Count(html, `aria-current="page"`))
}

func TestNavbar_IconsSearchAndAccount(t *testing.T) {
	html := render(t, Navbar(TabHome))

	// One icon per tab plus the search icon.
	assert.Equal(t, len(NavItems)+1, strings.Count(html, "<svg"))
	for _, item := range NavItems {
		assert.Contains(t, html, `<span class="relative z-10 hidden sm:inline">`+item.Label+`</span>`)
	}
	assert.Equal(t, len(NavItems), strings.Count(html, `sm:hidden`))

	assert.Contains(t, html, `type="search"`)
	assert.Contains(t, html, `placeholder="Search..."`)
	assert.Contains(t, html, "focus-within:ring-2")
	assert.Contains(t, html, ">Login</button>")
	assert.Contains(t, html, ">Sign Up</button>")

	// The animated marker sits on the active tab only.
	assert.Equal(t, 1, strings.Count(html, `class="nav-marker"`))
	home := html[strings.Index(html, `title="Home"`):strings.Index(html, `title="Courses"`)]
	assert.Contains(t, home, `class="nav-marker"`)
}

func TestNavbar_NoActiveTab(t *testing.T) {
	html := render(t, Navbar(""))
	assert.NotContains(t, html, "nav-marker")
	assert.NotContains(t, html, "aria-current")
}

func TestIcon_SVG(t *testing.T) {
	html := render(t, IconMap.SVG(18, "sm:hidden"))
	assert.True(t, strings.HasPrefix(html, `<svg xmlns="http://www.w3.org/2000/svg" width="18" height="18" viewBox="0 0 24 24"`), html)
	assert.Equal(t, len(IconMap), strings.Count(html, "<path"))
	assert.Contains(t, html, `class="sm:hidden"`)
	assert.NotContains(t, render(t, IconSearch.SVG(16, "")), "class=")
}

func TestBeam_RendersAnimatedGradient(t *testing.T) {
	snap := frontendSnapshot(t)
	b := snap.Beams[0]

	var buf bytes.Buffer
	require.NoError(t, Beam(b, snap.Style).Render(context.Background(), &buf))
	svg := buf.String()

	assert.Contains(t, svg, `width="1000" height="500" viewBox="0 0 1000 500"`)
	assert.Contains(t, svg, `d="`+b.Geometry.Path+`"`)
	assert.Contains(t, svg, `path="`+b.Geometry.Path+`"`)
	assert.Contains(t, svg, `stroke="url(#beam-frontend-1)"`)
	assert.Contains(t, svg, `<linearGradient id="beam-frontend-1" x1="0%" y1="0%" x2="100%" y2="0%">`)
	assert.Contains(t, svg, `<stop offset="0%" stop-color="#ff6b6b">`)
	assert.Contains(t, svg, `<stop offset="100%" stop-color="#4834d4">`)
	assert.Contains(t, svg, `dur="5s"`)
	assert.Contains(t, svg, `stroke-width="3"`)
	assert.Contains(t, svg, `pathLength="1"`)
	assert.Contains(t, svg, `attributeName="stroke-dashoffset" values="1;0"`)
	assert.Contains(t, svg, `<circle r="4" fill="#ff6b6b"`)
	assert.Contains(t, svg, `keyPoints="0;1"`)
	assert.Equal(t, 1, strings.Count(svg, "<path"))

	b.Reverse = true
	buf.Reset()
	require.NoError(t, Beam(b, snap.Style).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), `keyPoints="1;0"`)
	assert.Contains(t, buf.String(), `values="-1;0"`)
}

func TestBeam_EscapesAttributes(t *testing.T) {
	snap := frontendSnapshot(t)
	b := snap.Beams[0]
	b.Key = `a"><script>`

	var buf bytes.Buffer
	require.NoError(t, Beam(b, snap.Style).Render(context.Background(), &buf))
	assert.NotContains(t, buf.String(), "<script>")
	assert.Contains(t, buf.String(), `data-beam="a&#34;&gt;&lt;script&gt;"`)
}

func TestLearningPaths_SwitcherAndDiagram(t *testing.T) {
	cat := catalog.Default()
	snap := frontendSnapshot(t)
	html := render(t, LearningPaths(context.Background(), cat.Paths, snap))

	assert.Contains(t, html, `hx-get="/learning-paths/gamedev"`)
	assert.Contains(t, html, `hx-target="#diagram"`)
	assert.Contains(t, html, `data-live-view="path"`)
	assert.Equal(t, 6, strings.Count(html, `data-node="`))
	assert.Equal(t, 6, strings.Count(html, "<svg"))
	assert.Contains(t, html, `/learning-paths/frontend/graph.svg`)
}

func TestDashboard_StatCardsCarryTargets(t *testing.T) {
	d := catalog.Default().Dashboard
	html := render(t, Dashboard(d))

	assert.Contains(t, html, "Welcome back, Anime Student!")
	assert.Contains(t, html, `data-observe="stat-0"`)
	assert.Contains(t, html, `data-observe="stat-2"`)
	assert.Equal(t, 9, strings.Count(html, `data-circle=""`))
	assert.Contains(t, html, "Continue Learning")
	assert.Contains(t, html, "70% to Level 8")
}

func TestCourses_Grid(t *testing.T) {
	html := render(t, Courses(catalog.Default().Courses))
	assert.Contains(t, html, "Showing 6 courses")
	assert.Equal(t, 6, strings.Count(html, "data-course="))
	assert.Contains(t, html, "45%")
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1,234 learners", Count(1234, "learners"))
	assert.Equal(t, "45%", Percent(45))
}

func newSessionContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	store := sessions.NewCookieStore([]byte("a-very-secret-key-for-testing-!"))

	var c echo.Context
	handler := func(ctx echo.Context) error { c = ctx; return nil }
	_ = session.Middleware(store)(handler)(e.NewContext(req, rec))
	return c, rec
}

func TestNav_RememberedAcrossRequests(t *testing.T) {
	c, rec := newSessionContext(httptest.NewRequest(http.MethodGet, "/learning-paths/anime", nil))
	assert.Equal(t, NavState{}, GetNav(c))
	SetNav(c, TabLearningPaths, "anime")

	next := httptest.NewRequest(http.MethodGet, "/learning-paths", nil)
	for _, cookie := range rec.Result().Cookies() {
		next.AddCookie(cookie)
	}
	c2, _ := newSessionContext(next)
	assert.Equal(t, NavState{Tab: TabLearningPaths, Path: "anime"}, GetNav(c2))

	SetNav(c2, TabDashboard, "")
	assert.Equal(t, "anime", GetNav(c2).Path, "empty path keeps the remembered one")
}
