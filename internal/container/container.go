// Package container is the composition root: it loads configuration and builds the
// logger, metrics and class registry with samber/do.
package container

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/sghaida/classhelper/class"
)

// Container wraps the samber/do injector.
type Container struct {
	injector *do.RootScope
}

// NewContainer registers all services and eagerly builds the registry, so bad
// configuration, a failing catalog or a rejected override is reported here.
func NewContainer(configPath string, catalogs ...Catalog) (*Container, error) {
	injector := do.New()

	do.ProvideNamedValue(injector, ConfigPathKey, configPath)
	do.ProvideNamedValue(injector, CatalogsKey, catalogs)

	RegisterSingletons(injector)

	c := &Container{injector: injector}
	if _, err := do.Invoke[*RegistryService](injector); err != nil {
		_ = c.Shutdown()
		return nil, err
	}
	return c, nil
}

// Injector returns the underlying injector.
func (c *Container) Injector() *do.RootScope {
	return c.injector
}

// Registry returns the configured class registry.
func (c *Container) Registry() *class.Registry {
	return do.MustInvoke[*RegistryService](c.injector).Registry
}

// Invoke resolves a service from the container.
func Invoke[T any](c *Container) (T, error) {
	return do.Invoke[T](c.injector)
}

// MustInvoke resolves a service from the container or panics.
func MustInvoke[T any](c *Container) T {
	return do.MustInvoke[T](c.injector)
}

// Shutdown shuts services down in reverse order of initialization.
func (c *Container) Shutdown() error {
	report := c.injector.Shutdown()
	if report != nil && !report.Succeed {
		return fmt.Errorf("shutdown failed: %s", report.Error())
	}
	return nil
}
