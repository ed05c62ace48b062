package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new tether project",
	Long: `Initialize a new tether project by creating a project manifest (tether.toml)
and a sample TypeScript file. If [path|name] is omitted, initializes the current
directory. If a non-existing name is provided, a directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit creates a tether.toml manifest and a sample source file at the
// target path, creating the directory when it does not exist. It refuses
// to initialize a directory that already has a manifest.
func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "tether-project"
	}

	manifestPath := filepath.Join(target, "tether.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	manifest := buildDefaultManifest(name)
	if err := os.WriteFile(manifestPath, []byte(manifest), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	samplePath := filepath.Join(target, "main.ts")
	createdSample := false
	if _, err := os.Stat(samplePath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(samplePath, []byte(defaultMainTS()), 0o600); err != nil {
			return fmt.Errorf("failed to write main.ts: %w", err)
		}
		createdSample = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized tether project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - tether.toml\n")
	if createdSample {
		fmt.Fprintf(os.Stdout, "  - main.ts\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - main.ts (existing)\n")
	}
	return nil
}

// buildDefaultManifest returns a minimal TOML manifest used as a project marker.
func buildDefaultManifest(name string) string {
	return fmt.Sprintf(`# Tether project manifest
[package]
name = "%s"
version = "0.1.0"

[check]
ignore-static = false
`, name)
}

// defaultMainTS returns a placeholder source that trips the analyzer on purpose,
// so a fresh project demonstrates what tether reports.
func defaultMainTS() string {
	return `// Tether starter file. Run "tether check" here.

class Greeter {
    name = "world";

    greet(): string {
        return "Hello, " + this.name + "!";
    }

    greetDetached(this: void): string {
        return "Hello from nowhere";
    }
}

const greeter = new Greeter();

// Flagged: greet reads this.name, the extracted reference loses the receiver.
const broken = greeter.greet;

// Fine: the method promises it never touches this.
const safe = greeter.greetDetached;
`
}
