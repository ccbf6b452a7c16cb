package scan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-batis/config"
	"github.com/km-arc/go-batis/container"
	"github.com/km-arc/go-batis/metadata"
	"github.com/km-arc/go-batis/scan"
)

func TestConfigurer_RequiresBasePackages(t *testing.T) {
	cfgr := scan.NewConfigurer()
	err := cfgr.ProcessRegistry(container.NewRegistry())
	assert.ErrorIs(t, err, scan.ErrNoBasePackages)

	cfgr.BasePackages = "  \t "
	err = cfgr.ProcessRegistry(container.NewRegistry())
	assert.ErrorIs(t, err, scan.ErrNoBasePackages)
}

func TestConfigurer_ScansIntoRegistry(t *testing.T) {
	cfgr := scan.NewConfigurer()
	cfgr.Source = metadata.StaticSource{
		iface(pkgShop, "UserMapper"),
		iface(pkgAdmin, "AdminMapper"),
	}
	cfgr.BasePackages = "example.com/shop/mappers, example.com/shop/admin; example.com/unused"
	cfgr.SessionFactoryName = "sessionFactory"

	reg := container.NewRegistry()
	require.NoError(t, cfgr.ProcessRegistry(reg))

	assert.True(t, reg.Contains("userMapper"))
	assert.True(t, reg.Contains("adminMapper"))

	def, _ := reg.Definition("adminMapper")
	v, ok := def.Property("sessionFactory")
	require.True(t, ok)
	assert.Equal(t, container.Ref{Name: "sessionFactory"}, v)
}

func TestConfigurer_LazyInitParsing(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"true", true},
		{"1", true},
		{"false", false},
		{"", false},
		{"bogus", false},
	}
	for _, tt := range tests {
		cfgr := scan.NewConfigurer()
		cfgr.Source = metadata.StaticSource{iface(pkgShop, "UserMapper")}
		cfgr.BasePackages = pkgShop
		cfgr.LazyInit = tt.raw

		reg := container.NewRegistry()
		require.NoError(t, cfgr.ProcessRegistry(reg))
		def, _ := reg.Definition("userMapper")
		assert.Equal(t, tt.want, def.Lazy, "lazyInit=%q", tt.raw)
	}
}

func TestConfigurer_PlaceholdersWithoutContainer(t *testing.T) {
	cfgr := scan.NewConfigurer()
	cfgr.Source = metadata.StaticSource{iface(pkgShop, "UserMapper")}
	cfgr.BasePackages = "${PKGS}"
	cfgr.ProcessPlaceholders = true

	reg := container.NewRegistry()
	require.NoError(t, cfgr.ProcessRegistry(reg), "a missing collaborator skips resolution silently")
	assert.Equal(t, 0, reg.Len(), "the literal placeholder matches no package")
}

func TestConfigurer_PlaceholdersFromEnvironment(t *testing.T) {
	c := container.New()
	c.SetEnvironment(config.NewEnvironment(config.NewMapSource("test", map[string]string{
		"PKGS":    pkgShop,
		"SF_NAME": "sessionFactory",
	})))

	cfgr := scan.NewConfigurer()
	cfgr.Source = metadata.StaticSource{iface(pkgShop, "UserMapper")}
	cfgr.BasePackages = "${PKGS}"
	cfgr.SessionFactoryName = "${SF_NAME}"
	cfgr.ProcessPlaceholders = true
	cfgr.SetContainer(c)

	reg := container.NewRegistry()
	require.NoError(t, cfgr.ProcessRegistry(reg))

	def, ok := reg.Definition("userMapper")
	require.True(t, ok)
	v, _ := def.Property("sessionFactory")
	assert.Equal(t, container.Ref{Name: "sessionFactory"}, v)
}

func TestConfigurer_PlaceholdersFromPropertyConfigurers(t *testing.T) {
	c := container.New()

	def := container.NewDefinition(container.TypeKey(&scan.Configurer{}))
	def.FactoryType = scan.ConfigurerFactoryType()
	def.SetProperty("basePackages", "${PKGS}")
	def.SetProperty("lazyInit", "${LAZY}")
	def.SetProperty("sessionFactoryName", "${SF_NAME}")
	c.Definitions().Register("mapperScan", def)

	env := config.NewEnvironment(config.NewMapSource("test", map[string]string{
		"PKGS":    pkgShop,
		"LAZY":    "true",
		"SF_NAME": "sessionFactory",
	}))
	c.Instance("propertyConfigurer", config.NewPlaceholderConfigurer(env))

	cfgr := scan.NewConfigurer()
	cfgr.Source = metadata.StaticSource{iface(pkgShop, "UserMapper")}
	cfgr.BasePackages = "${PKGS}"
	cfgr.LazyInit = "${LAZY}"
	cfgr.SessionFactoryName = "${SF_NAME}"
	cfgr.ProcessPlaceholders = true
	cfgr.SetComponentName("mapperScan")
	cfgr.SetContainer(c)

	// No environment on the container: everything must come through the
	// property configurer pass over the configurer's own definition.
	require.NoError(t, cfgr.ProcessRegistry(c.Definitions()))

	mdef, ok := c.Definitions().Definition("userMapper")
	require.True(t, ok)
	assert.True(t, mdef.Lazy)
	v, _ := mdef.Property("sessionFactory")
	assert.Equal(t, container.Ref{Name: "sessionFactory"}, v)
}

func TestConfigurer_PropertyConfigurersRunInOrder(t *testing.T) {
	c := container.New()

	def := container.NewDefinition(container.TypeKey(&scan.Configurer{}))
	def.FactoryType = scan.ConfigurerFactoryType()
	def.SetProperty("basePackages", "unresolved")
	c.Definitions().Register("mapperScan", def)

	first := config.NewOverrideConfigurer(map[string]string{"mapperScan.basePackages": "example.com/wrong"})
	first.SetOrder(0)
	last := config.NewOverrideConfigurer(map[string]string{"mapperScan.basePackages": pkgShop})
	last.SetOrder(1)
	c.Instance("overrides.first", first)
	c.Instance("overrides.last", last)

	cfgr := scan.NewConfigurer()
	cfgr.Source = metadata.StaticSource{iface(pkgShop, "UserMapper")}
	cfgr.BasePackages = "unresolved"
	cfgr.ProcessPlaceholders = true
	cfgr.SetComponentName("mapperScan")
	cfgr.SetContainer(c)

	require.NoError(t, cfgr.ProcessRegistry(c.Definitions()))
	assert.True(t, c.Definitions().Contains("userMapper"), "the later override wins")
}
