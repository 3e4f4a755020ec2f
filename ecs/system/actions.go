package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ActionHost receives the effects of an icon action script.
type ActionHost interface {
	OpenPanel(label string)
	OpenURL(url string)
}

// ActionRunner compiles icon scripts once and runs them against a host. Each
// script sees the clicked icon's label as `label` and may call
// open_panel(label) and open_url(url).
type ActionRunner struct {
	compiled map[string]*tengo.Compiled
	host     ActionHost
}

func NewActionRunner() *ActionRunner {
	return &ActionRunner{compiled: map[string]*tengo.Compiled{}}
}

// Forget drops cached compilations, so edited scripts are recompiled.
func (r *ActionRunner) Forget() {
	r.compiled = map[string]*tengo.Compiled{}
}

func (r *ActionRunner) Run(src, label string, host ActionHost) error {
	if strings.TrimSpace(src) == "" {
		return nil
	}
	compiled, err := r.compile(src)
	if err != nil {
		return fmt.Errorf("actions: compile %q: %w", label, err)
	}

	r.host = host
	defer func() { r.host = nil }()

	if err := compiled.Set("label", label); err != nil {
		return fmt.Errorf("actions: set label: %w", err)
	}
	if err := compiled.Run(); err != nil {
		return fmt.Errorf("actions: run %q: %w", label, err)
	}
	return nil
}

func (r *ActionRunner) compile(src string) (*tengo.Compiled, error) {
	if c, ok := r.compiled[src]; ok {
		return c, nil
	}

	script := tengo.NewScript([]byte(src))
	script.SetImports(stdlib.GetModuleMap("text", "fmt"))
	_ = script.Add("label", "")
	_ = script.Add("open_panel", &tengo.UserFunction{Name: "open_panel", Value: r.openPanel})
	_ = script.Add("open_url", &tengo.UserFunction{Name: "open_url", Value: r.openURL})

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	r.compiled[src] = compiled
	return compiled, nil
}

func (r *ActionRunner) openPanel(args ...tengo.Object) (tengo.Object, error) {
	name, err := stringArg("open_panel", args)
	if err != nil {
		return nil, err
	}
	if r.host == nil || name == "" {
		return tengo.FalseValue, nil
	}
	r.host.OpenPanel(name)
	return tengo.TrueValue, nil
}

func (r *ActionRunner) openURL(args ...tengo.Object) (tengo.Object, error) {
	url, err := stringArg("open_url", args)
	if err != nil {
		return nil, err
	}
	if r.host == nil || url == "" {
		return tengo.FalseValue, nil
	}
	r.host.OpenURL(url)
	return tengo.TrueValue, nil
}

func stringArg(fn string, args []tengo.Object) (string, error) {
	if len(args) != 1 {
		return "", tengo.ErrWrongNumArguments
	}
	s, ok := tengo.ToString(args[0])
	if !ok {
		return "", tengo.ErrInvalidArgumentType{Name: fn, Expected: "string", Found: args[0].TypeName()}
	}
	return strings.TrimSpace(s), nil
}
