package request_test

import (
	"path/filepath"
	"strings"
	"testing"

	"imgconv/internal/request"
	"imgconv/internal/testsupport"
)

func TestConversionRequestResolvesPaths(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	args := request.Args{
		Paths:   []string{"cat.png", "/abs/dog.bmp"},
		Format:  "jpg",
		DestDir: filepath.Join(testsupport.BaseDir(cfg), "dest"),
		Config:  cfg,
	}

	req, err := args.ConversionRequest()
	if err != nil {
		t.Fatalf("ConversionRequest: %v", err)
	}
	if req.Target.String() != "jpeg" {
		t.Fatalf("expected jpeg target, got %s", req.Target)
	}
	if len(req.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(req.Sources))
	}
	if !filepath.IsAbs(req.Sources[0]) {
		t.Fatalf("relative source not resolved: %s", req.Sources[0])
	}
	if req.Sources[1] != "/abs/dog.bmp" {
		t.Fatalf("absolute source changed: %s", req.Sources[1])
	}
}

func TestConversionRequestDefaultsDestination(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	args := request.Args{
		Paths:  []string{"cat.png"},
		Format: "png",
		Config: cfg,
	}

	req, err := args.ConversionRequest()
	if err != nil {
		t.Fatalf("ConversionRequest: %v", err)
	}
	if req.DestDir != cfg.Paths.OutputDir {
		t.Fatalf("expected configured output dir %s, got %s", cfg.Paths.OutputDir, req.DestDir)
	}
}

func TestConversionRequestPrefersLastUsedDir(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Paths.LastUsedDir = filepath.Join(testsupport.BaseDir(cfg), "recent")
	args := request.Args{
		Paths:  []string{"cat.png"},
		Format: "png",
		Config: cfg,
	}

	req, err := args.ConversionRequest()
	if err != nil {
		t.Fatalf("ConversionRequest: %v", err)
	}
	if req.DestDir != cfg.Paths.LastUsedDir {
		t.Fatalf("expected last used dir, got %s", req.DestDir)
	}
}

func TestConversionRequestExplicitDestinationWins(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Paths.LastUsedDir = "/somewhere/else"
	explicit := filepath.Join(testsupport.BaseDir(cfg), "chosen")
	args := request.Args{
		Paths:   []string{"cat.png"},
		Format:  "png",
		DestDir: explicit,
		Config:  cfg,
	}

	req, err := args.ConversionRequest()
	if err != nil {
		t.Fatalf("ConversionRequest: %v", err)
	}
	if req.DestDir != explicit {
		t.Fatalf("expected explicit destination, got %s", req.DestDir)
	}
}

func TestConversionRequestErrors(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	cases := []struct {
		name    string
		args    request.Args
		wantMsg string
	}{
		{
			name:    "no sources",
			args:    request.Args{Format: "png", Config: cfg},
			wantMsg: "no source files",
		},
		{
			name:    "bad format",
			args:    request.Args{Paths: []string{"a.png"}, Format: "heic", Config: cfg},
			wantMsg: "unsupported target format",
		},
		{
			name:    "no destination anywhere",
			args:    request.Args{Paths: []string{"a.png"}, Format: "png"},
			wantMsg: "no destination directory",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.args.ConversionRequest()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("error %q does not mention %q", err, tc.wantMsg)
			}
		})
	}
}
