package logging

import "testing"

func TestL_BeforeInit(t *testing.T) {
	if L() == nil {
		t.Fatal("L() returned nil before Init")
	}
	// Nop logger must not panic
	L().Info("ignored")
}

func TestInit_Verbose(t *testing.T) {
	if err := Init(true); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if L() == nil {
		t.Fatal("L() returned nil after Init")
	}
	if !L().Core().Enabled(-1) { // -1 is zapcore.DebugLevel
		t.Error("debug level should be enabled in verbose mode")
	}
}

func TestInit_Quiet(t *testing.T) {
	if err := Init(false); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if L().Core().Enabled(0) { // 0 is zapcore.InfoLevel
		t.Error("info level should be disabled in quiet mode")
	}
	Sync()
}
