package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Site.ArticleBase != "https://en.wikipedia.org/wiki" {
		t.Errorf("ArticleBase = %q", cfg.Site.ArticleBase)
	}
	if cfg.Site.TargetTitle != "Philosophy" {
		t.Errorf("TargetTitle = %q", cfg.Site.TargetTitle)
	}
	if cfg.Renderer.Engine != "rod" {
		t.Errorf("Engine = %q", cfg.Renderer.Engine)
	}
	if cfg.Renderer.NavTimeout != 30*time.Second {
		t.Errorf("NavTimeout = %v", cfg.Renderer.NavTimeout)
	}
	if cfg.Renderer.PageEvery != time.Second {
		t.Errorf("PageEvery = %v", cfg.Renderer.PageEvery)
	}
	if cfg.Walk.Input != "pageviews.wmcloud.org-top400.yaml" {
		t.Errorf("Input = %q", cfg.Walk.Input)
	}
	if cfg.Walk.Output != "philosophy-battery-test.csv" {
		t.Errorf("Output = %q", cfg.Walk.Output)
	}
	if cfg.Walk.Passes != 0 {
		t.Errorf("Passes = %d", cfg.Walk.Passes)
	}
	if cfg.Server.Enabled || cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 8080 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GTP_TARGET", "Mathematics")
	t.Setenv("GTP_ENGINE", "http")
	t.Setenv("GTP_NAV_TIMEOUT", "5s")
	t.Setenv("GTP_PASSES", "3")
	t.Setenv("GTP_SERVE", "true")
	t.Setenv("GTP_HEADLESS", "false")

	cfg := Load()

	if cfg.Site.TargetTitle != "Mathematics" {
		t.Errorf("TargetTitle = %q", cfg.Site.TargetTitle)
	}
	if cfg.Renderer.Engine != "http" {
		t.Errorf("Engine = %q", cfg.Renderer.Engine)
	}
	if cfg.Renderer.NavTimeout != 5*time.Second {
		t.Errorf("NavTimeout = %v", cfg.Renderer.NavTimeout)
	}
	if cfg.Walk.Passes != 3 {
		t.Errorf("Passes = %d", cfg.Walk.Passes)
	}
	if !cfg.Server.Enabled {
		t.Error("Server.Enabled = false")
	}
	if cfg.Browser.Headless {
		t.Error("Headless = true")
	}
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("GTP_PASSES", "many")
	t.Setenv("GTP_NAV_TIMEOUT", "soon")
	t.Setenv("GTP_HEADLESS", "yep")

	cfg := Load()

	if cfg.Walk.Passes != 0 {
		t.Errorf("Passes = %d, want the default", cfg.Walk.Passes)
	}
	if cfg.Renderer.NavTimeout != 30*time.Second {
		t.Errorf("NavTimeout = %v, want the default", cfg.Renderer.NavTimeout)
	}
	if !cfg.Browser.Headless {
		t.Error("Headless should fall back to true")
	}
}
