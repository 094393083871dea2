package errors

import (
	"strings"
	"testing"
)

func TestValidateDeclarationFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantErr  bool
	}{
		{"default", "dependency.txt", false},
		{"hidden file allowed", ".deps", false},
		{"empty", "", true},
		{"forward slash", "sub/dependency.txt", true},
		{"backslash", "sub\\dependency.txt", true},
		{"dot", ".", true},
		{"dot dot", "..", true},
		{"control char", "dep\x01.txt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDeclarationFilename(tt.filename)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDeclarationFilename(%q) error = %v, wantErr %v", tt.filename, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("ValidateDeclarationFilename(%q) code = %v, want %v", tt.filename, GetCode(err), ErrCodeInvalidConfig)
			}
		})
	}
}

func TestValidateLibraryDir(t *testing.T) {
	tests := []struct {
		name    string
		dir     string
		wantErr bool
	}{
		{"relative", "./libraries", false},
		{"absolute", "/opt/libs", false},
		{"parent", "../shared/libs", false},
		{"empty", "", true},
		{"null byte", "libs\x00", true},
		{"newline", "libs\n", true},
		{"too long", strings.Repeat("a", 4097), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLibraryDir(tt.dir)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLibraryDir(%q) error = %v, wantErr %v", tt.dir, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLibraryName(t *testing.T) {
	tests := []struct {
		name    string
		libName string
		wantErr bool
	}{
		{"typical", "repo.git-main", false},
		{"empty ref", "repo-", false},
		{"slash in ref", "repo-feature/login", false},
		{"dots inside segment", "..-main", false},
		{"empty", "", true},
		{"absolute", "/etc-main", true},
		{"traversal", "repo-/../../etc", true},
		{"windows traversal", "repo-\\..\\x", true},
		{"single dot component", "repo-/./x", true},
		{"control char", "repo-\tmain", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLibraryName(tt.libName)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLibraryName(%q) error = %v, wantErr %v", tt.libName, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidLibraryName) {
				t.Errorf("ValidateLibraryName(%q) code = %v", tt.libName, GetCode(err))
			}
		})
	}
}

func TestValidateSourceURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https", "https://example.com/org/repo.git", false},
		{"scp style", "git@example.com:org/repo.git", false},
		{"relative path", "../mirror/repo", false},
		{"dash inside", "https://x/my-repo", false},
		{"empty", "", true},
		{"upload pack option", "--upload-pack=touch${IFS}/tmp/x;false", true},
		{"short option", "-c", true},
		{"control char", "https://x/\nrepo", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSourceURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSourceURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSourceURL) {
				t.Errorf("ValidateSourceURL(%q) code = %v", tt.url, GetCode(err))
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidConfig,
		ErrCodeInvalidLibraryRoot,
		ErrCodeInvalidDeclarationFile,
		ErrCodeInvalidLibraryName,
		ErrCodeInvalidSourceURL,
		ErrCodeNoDependencies,
		ErrCodeSynchronizer,
		ErrCodeSynchronizerMissing,
		ErrCodeFilesystemEnumeration,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
