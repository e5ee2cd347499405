package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
)

// isolateEnv unsets every recognised variable and points the home directory
// at an empty temp dir for the duration of the test.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range append([]string{"APPDATA"}, fileKeys...) {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unsetenv %s: %v", key, err)
		}
	}
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolateEnv(t)
	chdir(t, t.TempDir())

	settings, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if settings.ProjectRef() != DefaultProjectRef || settings.DBPassword() != LocalDBPassword {
		t.Fatalf("unexpected settings: %+v", settings)
	}
}

func TestLoadReadsWorkingDirectoryFile(t *testing.T) {
	isolateEnv(t)
	wd := t.TempDir()
	writeFile(t, filepath.Join(wd, "custom.env"), "SUPABASE_REGION=eu-west-1\nSUPABASE_PROJECT_REF=myproject\nSUPABASE_DB_PASSWORD=s3cr3t\n")
	chdir(t, wd)
	t.Setenv(KeyRegion, "ap-south-1")

	settings, err := Load(&LoadOptions{EnvFile: "custom.env", Logger: zaptest.NewLogger(t)})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if settings.Region() != "ap-south-1" {
		t.Fatalf("expected environment region, got %s", settings.Region())
	}
	if settings.ProjectRef() != "myproject" || settings.DBPassword() != "s3cr3t" {
		t.Fatalf("expected file values, got %+v", settings)
	}
}

func TestLoadRemoteWithoutPasswordFails(t *testing.T) {
	isolateEnv(t)
	chdir(t, t.TempDir())
	t.Setenv(KeyProjectRef, "myproject.supabase.co")

	if _, err := Load(&LoadOptions{Logger: zaptest.NewLogger(t)}); err == nil {
		t.Fatalf("expected error for missing remote password")
	}
}
