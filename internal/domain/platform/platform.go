package platform

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// BinaryName is the base name shared by every release artifact.
const BinaryName = "kubernetes-mcp-server"

// Canonical operating system and architecture names used in artifact names.
const (
	OSDarwin  = "darwin"
	OSLinux   = "linux"
	OSWindows = "windows"

	ArchAMD64 = "amd64"
	ArchARM64 = "arm64"
)

var (
	// ErrUnsupportedPlatform is the parent of every resolution failure.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	// ErrUnsupportedArchitecture is returned for architectures without a release artifact.
	ErrUnsupportedArchitecture = errors.New("unsupported architecture")
	// ErrUnsupportedOS is returned for operating systems without a release artifact.
	ErrUnsupportedOS = errors.New("unsupported operating system")
)

// Platform is a normalized operating system and architecture pair.
type Platform struct {
	OS   string
	Arch string
}

// String renders the pair as os/arch.
func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}

// Artifact returns the release artifact filename for the pair.
func (p Platform) Artifact() (string, error) {
	return Resolve(p.OS, p.Arch)
}

// Supported returns every pair a release artifact is published for.
func Supported() []Platform {
	return []Platform{
		{OS: OSDarwin, Arch: ArchAMD64},
		{OS: OSDarwin, Arch: ArchARM64},
		{OS: OSLinux, Arch: ArchAMD64},
		{OS: OSLinux, Arch: ArchARM64},
		{OS: OSWindows, Arch: ArchAMD64},
		{OS: OSWindows, Arch: ArchARM64},
	}
}

// Current resolves the platform the process runs on.
func Current() (Platform, string, error) {
	p, err := Normalize(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return Platform{}, "", err
	}

	artifact, err := p.Artifact()
	if err != nil {
		return Platform{}, "", err
	}

	return p, artifact, nil
}

// Normalize validates the host reported names and converts them to canonical ones.
// The architecture is checked first.
func Normalize(osName, machineArch string) (Platform, error) {
	arch, err := normalizeArch(machineArch)
	if err != nil {
		return Platform{}, err
	}

	normalizedOS := strings.ToLower(strings.TrimSpace(osName))
	switch normalizedOS {
	case OSDarwin, OSLinux, OSWindows:
	default:
		return Platform{}, fmt.Errorf("%w: %w: %s", ErrUnsupportedPlatform, ErrUnsupportedOS, osName)
	}

	return Platform{OS: normalizedOS, Arch: arch}, nil
}

// Resolve returns the artifact filename for the host reported OS and architecture.
func Resolve(osName, machineArch string) (string, error) {
	p, err := Normalize(osName, machineArch)
	if err != nil {
		return "", err
	}

	name := BinaryName + "-" + p.OS + "-" + p.Arch
	if p.OS == OSWindows {
		name += ".exe"
	}

	return name, nil
}

func normalizeArch(machineArch string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(machineArch)) {
	case "x86_64", ArchAMD64:
		return ArchAMD64, nil
	case ArchARM64, "aarch64":
		return ArchARM64, nil
	default:
		return "", fmt.Errorf("%w: %w: %s", ErrUnsupportedPlatform, ErrUnsupportedArchitecture, machineArch)
	}
}
