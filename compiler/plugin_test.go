package compiler

import (
	"testing"

	"github.com/polkovnikov-ph/peggy/check"
)

func TestPluginFuncAdapter(t *testing.T) {
	called := false
	var p Plugin = PluginFunc(func(cfg *Config, opts *Options) {
		called = true
		opts.ReservedWords = []string{"custom"}
	})

	opts := Options{}
	cfg := newConfig(opts)
	p.Use(cfg, &opts)

	if !called {
		t.Error("PluginFunc.Use did not invoke the wrapped function")
	}
	if len(opts.ReservedWords) != 1 || opts.ReservedWords[0] != "custom" {
		t.Errorf("opts.ReservedWords = %v, want [custom]", opts.ReservedWords)
	}
}

// A plugin can shorten the check-pass list before Compile runs it.
func TestPluginCanRemoveAPass(t *testing.T) {
	opts := Options{
		Plugins: []Plugin{PluginFunc(func(cfg *Config, opts *Options) {
			var kept []check.Named
			for _, p := range cfg.CheckPasses {
				if p.Name != "left-recursion" {
					kept = append(kept, p)
				}
			}
			cfg.CheckPasses = kept
		})},
	}
	cfg := newConfig(opts)
	for _, p := range opts.Plugins {
		p.Use(cfg, &opts)
	}
	for _, p := range cfg.CheckPasses {
		if p.Name == "left-recursion" {
			t.Fatal("left-recursion pass should have been removed by the plugin")
		}
	}
	if len(cfg.CheckPasses) != len(check.Default())-1 {
		t.Errorf("got %d passes, want %d", len(cfg.CheckPasses), len(check.Default())-1)
	}
}

func TestNewConfigDefaultsReservedWords(t *testing.T) {
	cfg := newConfig(Options{})
	if len(cfg.ReservedWords) != len(DefaultReservedWords) {
		t.Errorf("got %d reserved words, want %d", len(cfg.ReservedWords), len(DefaultReservedWords))
	}
}

func TestNewConfigHonorsOverride(t *testing.T) {
	cfg := newConfig(Options{ReservedWords: []string{"foo"}})
	if len(cfg.ReservedWords) != 1 || cfg.ReservedWords[0] != "foo" {
		t.Errorf("cfg.ReservedWords = %v, want [foo]", cfg.ReservedWords)
	}
}
