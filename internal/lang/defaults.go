package lang

import (
	"github.com/kessdev/codegraph/internal/lang/c"
	"github.com/kessdev/codegraph/internal/lang/cpp"
	"github.com/kessdev/codegraph/internal/lang/golang"
	"github.com/kessdev/codegraph/internal/lang/java"
	"github.com/kessdev/codegraph/internal/lang/javascript"
	"github.com/kessdev/codegraph/internal/lang/python"
	"github.com/kessdev/codegraph/internal/lang/rust"
	"github.com/kessdev/codegraph/internal/lang/typescript"
)

// DefaultRegistry builds a Registry with every shipped grammar adapter
// registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(golang.New())
	r.Register(python.New())
	r.Register(javascript.New())
	r.Register(typescript.New())
	r.Register(rust.New())
	r.Register(c.New())
	r.Register(cpp.New())
	r.Register(java.New())
	return r
}
