package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// 模块可选择实现其中一个或多个接口
type PublicModule interface{ MountPublic(*gin.RouterGroup) }
type APIModule interface{ MountAPI(*gin.RouterGroup) }
type AdminModule interface{ MountAdmin(*gin.RouterGroup) }

// 可选：实现该接口可控制挂载顺序（数值越小越先挂），不实现则默认 100
type prioritizer interface{ Priority() int }

// Registry 收集功能模块，再按分组挂载
type Registry struct {
	publicMods []PublicModule
	apiMods    []APIModule
	adminMods  []AdminModule
}

// Register 根据类型断言分发到各列表
func (r *Registry) Register(mods ...any) {
	for _, mod := range mods {
		if m, ok := mod.(PublicModule); ok {
			r.publicMods = append(r.publicMods, m)
		}
		if m, ok := mod.(APIModule); ok {
			r.apiMods = append(r.apiMods, m)
		}
		if m, ok := mod.(AdminModule); ok {
			r.adminMods = append(r.adminMods, m)
		}
	}
}

// MountAllPublic 挂载无需登录的接口
func (r *Registry) MountAllPublic(g *gin.RouterGroup) {
	for _, m := range sorted(r.publicMods) {
		m.MountPublic(g)
	}
}

// MountAllAPI 在 /api/v1 的鉴权分组上挂载
func (r *Registry) MountAllAPI(g *gin.RouterGroup) {
	for _, m := range sorted(r.apiMods) {
		m.MountAPI(g)
	}
}

// MountAllAdmin 在 /admin/v1 上挂载
func (r *Registry) MountAllAdmin(g *gin.RouterGroup) {
	for _, m := range sorted(r.adminMods) {
		m.MountAdmin(g)
	}
}

func sorted[M any](mods []M) []M {
	out := append([]M(nil), mods...)
	sort.SliceStable(out, func(i, j int) bool {
		return priorityOf(out[i]) < priorityOf(out[j])
	})
	return out
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
