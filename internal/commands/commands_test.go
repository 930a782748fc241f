package commands

import (
	"testing"

	"github.com/AryaMundra/VeriWise/internal/api"
)

func TestRootCommandRegistration(t *testing.T) {
	want := map[string]bool{
		"chat":     false,
		"sessions": false,
		"verify":   false,
		"deepfake": false,
		"config":   false,
	}

	for _, sub := range rootCmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootFlags(t *testing.T) {
	for _, name := range []string{"output", "file", "image", "video", "copy", "version"} {
		if rootCmd.Flags().Lookup(name) == nil {
			t.Errorf("root flag %q not defined", name)
		}
	}
	if rootCmd.PersistentFlags().Lookup("api-base") == nil {
		t.Error("persistent flag api-base not defined")
	}
}

func TestSessionsSubcommands(t *testing.T) {
	want := map[string]bool{
		"list": false, "show": false, "delete": false, "clear": false, "export": false,
	}
	for _, sub := range sessionsCmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("sessions subcommand %q not registered", name)
		}
	}
}

func TestConfigSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range configCmd.Commands() {
		names[sub.Name()] = true
	}
	if !names["show"] || !names["set"] {
		t.Errorf("config subcommands missing: %v", names)
	}
}

func TestResolveMediaType(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		flag    string
		want    string
		wantErr bool
	}{
		{"explicit image", "whatever.bin", "image", api.MediaTypeImage, false},
		{"explicit video", "whatever.bin", "video", api.MediaTypeVideo, false},
		{"invalid flag", "photo.jpg", "audio", "", true},
		{"jpg inferred", "photo.jpg", "", api.MediaTypeImage, false},
		{"jpeg inferred", "photo.JPEG", "", api.MediaTypeImage, false},
		{"png inferred", "shot.png", "", api.MediaTypeImage, false},
		{"mp4 inferred", "clip.mp4", "", api.MediaTypeVideo, false},
		{"mov inferred", "clip.MOV", "", api.MediaTypeVideo, false},
		{"unknown extension", "document.pdf", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveMediaType(tt.path, tt.flag)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAPIBase_FlagWins(t *testing.T) {
	orig := apiBaseFlag
	defer func() { apiBaseFlag = orig }()

	apiBaseFlag = "http://example.test:9000"
	if got := apiBase(); got != "http://example.test:9000" {
		t.Errorf("apiBase() = %s", got)
	}
}

func TestRunAnalyze_NoInput(t *testing.T) {
	origImage, origVideo := imageFlag, videoFlag
	defer func() { imageFlag, videoFlag = origImage, origVideo }()
	imageFlag, videoFlag = "", ""

	if err := runAnalyze("   "); err == nil {
		t.Error("expected error for empty input")
	}
}
