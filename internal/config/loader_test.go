package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sunugal/releves/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.CookieName, convey.ShouldEqual, "authToken")
				convey.So(cfg.TopElements, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("RELEVES_ADDR", ":8080")
			_ = os.Setenv("RELEVES_API_BASE_URL", "http://127.0.0.1:7080/api")
			_ = os.Setenv("RELEVES_TOP_ELEMENTS", "3")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.APIBaseURL, convey.ShouldEqual, "http://127.0.0.1:7080/api")
				convey.So(cfg.TopElements, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
api_base_url: "http://upstream.test/api"
cookie_name: "portalToken"
label_width: 12
`
			tmpFile := createTempConfigFile(t, yamlContent)

			_ = os.Setenv("RELEVES_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.APIBaseURL, convey.ShouldEqual, "http://upstream.test/api")
				convey.So(cfg.CookieName, convey.ShouldEqual, "portalToken")
				convey.So(cfg.LabelWidth, convey.ShouldEqual, 12)
			})
		})

		convey.Convey("When env vars override the YAML file", func() {
			yamlContent := `
addr: ":9090"
`
			tmpFile := createTempConfigFile(t, yamlContent)

			_ = os.Setenv("RELEVES_CONFIG", tmpFile)
			_ = os.Setenv("RELEVES_ADDR", ":7070")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env wins over file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			})
		})

		convey.Convey("When validation fails", func() {
			_ = os.Setenv("RELEVES_TOP_ELEMENTS", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"RELEVES_CONFIG",
		"RELEVES_ADDR",
		"RELEVES_API_BASE_URL",
		"RELEVES_TOP_ELEMENTS",
		"RELEVES_COOKIE_NAME",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}
