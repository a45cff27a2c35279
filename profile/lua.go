package profile

import (
	"fmt"
	"os"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"

	"github.com/uetools/propscan/entity"
)

type LuaConfig struct {
	Name       string `yaml:"-"`
	ScriptPath string `yaml:"script-path"`
}

// Lua classifies bindings with a user-supplied script, for games no
// built-in profile covers. The script must define a global function
//
//	classify_texture(param, texture)
//
// returning one of "diffuse", "normal", "sro", "mro", "mroh" (case
// does not matter), or nil for bindings it does not recognize. A json
// module is preloaded and available via require("json").
type Lua struct {
	cfg  LuaConfig
	pool *sync.Pool
}

func NewLua(cfg LuaConfig) (*Lua, error) {
	if _, err := os.Stat(cfg.ScriptPath); err != nil {
		return nil, fmt.Errorf("profile script: %w", err)
	}

	p := &Lua{cfg: cfg}
	p.pool = &sync.Pool{
		New: func() any {
			L, err := p.newState()
			if err != nil {
				panic(err)
			}
			return L
		},
	}

	// Build the first state by hand so a broken script surfaces here
	// as an error instead of panicking inside a worker.
	L, err := p.newState()
	if err != nil {
		return nil, err
	}
	p.pool.Put(L)

	return p, nil
}

func (p *Lua) newState() (*lua.LState, error) {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // don't load anything by default
	})

	// Manually open only the safe libraries; no 'os', no 'io'.
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage}, // allows 'require'
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	luajson.Preload(L)

	if err := L.DoFile(p.cfg.ScriptPath); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading profile script: %w", err)
	}

	if _, ok := L.GetGlobal("classify_texture").(*lua.LFunction); !ok {
		L.Close()
		return nil, fmt.Errorf("script %s does not define classify_texture", p.cfg.ScriptPath)
	}

	return L, nil
}

func (p *Lua) Name() string {
	return p.cfg.Name
}

func (p *Lua) ClassifyTexture(param, texture string) (entity.TextureMap, error) {
	L := p.pool.Get().(*lua.LState)
	defer p.pool.Put(L)

	err := L.CallByParam(lua.P{
		Fn:      L.GetGlobal("classify_texture"),
		NRet:    1,
		Protect: true,
	}, lua.LString(param), lua.LString(texture))
	if err != nil {
		return entity.TextureMapUnknown, fmt.Errorf("classify_texture: %w", err)
	}

	ret := L.Get(-1)
	L.Pop(1)

	if ret == lua.LNil {
		return entity.TextureMapUnknown, nil
	}

	name, ok := ret.(lua.LString)
	if !ok {
		return entity.TextureMapUnknown, fmt.Errorf("classify_texture returned %s, want string or nil", ret.Type())
	}

	return entity.ParseTextureMap(strings.ToUpper(string(name))), nil
}
