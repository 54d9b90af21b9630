package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIPrefix is where the versioned API is mounted
const APIPrefix = "/api/v1"

// Mount registers groups under prefix on engine, in order
func Mount(engine *gin.Engine, prefix string, groups ...*DomainGroup) {
	api := engine.Group(prefix)
	for _, g := range groups {
		g.mount(api)
	}
}

// DomainGroup collects the routes of one area (payments, marketplace,
// admin...) together with the middleware guarding them
type DomainGroup struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
	children   []*DomainGroup
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Name is used for logging and tests
func (dg *DomainGroup) Name() string { return dg.name }

// Use adds middleware to this group. A nil handler is skipped so optional
// middleware (a disabled rate limit) can be passed unconditionally.
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	for _, m := range middleware {
		if m != nil {
			dg.middleware = append(dg.middleware, m)
		}
	}
	return dg
}

func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodGet, path, handlers)
}

func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPost, path, handlers)
}

func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPut, path, handlers)
}

func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodDelete, path, handlers)
}

func (dg *DomainGroup) add(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, route{method: method, path: path, handlers: handlers})
	return dg
}

// Group nests a child under this group's prefix; it runs the parent's
// middleware before its own
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	child := NewDomainGroup(name, prefix)
	dg.children = append(dg.children, child)
	return child
}

// RouteCount counts the routes of this group and its children
func (dg *DomainGroup) RouteCount() int {
	n := len(dg.routes)
	for _, c := range dg.children {
		n += c.RouteCount()
	}
	return n
}

func (dg *DomainGroup) mount(parent *gin.RouterGroup) {
	g := parent.Group(dg.prefix, dg.middleware...)
	for _, r := range dg.routes {
		g.Handle(r.method, r.path, r.handlers...)
	}
	for _, c := range dg.children {
		c.mount(g)
	}
}
