// Package version resolves a Mojang version id (e.g. "1.20.4") to the
// downloadable server jar and the JDK major version it requires.
package version

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const manifestURL = "https://launchermeta.mojang.com/mc/game/version_manifest.json"

// Errors returned by Resolve.
var (
	ErrVersionNotFound    = errors.New("version not found in manifest")
	ErrServerInfoNotFound = errors.New("version has no server download")
)

// Descriptor is what the caller needs to provision a server: the jar to
// download and the JDK major version it needs to run under.
type Descriptor struct {
	ID         string
	JarURL     string
	JDKMajor   uint8
}

// manifestEntry is one entry of the version_manifest.json "versions" array.
type manifestEntry struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type manifest struct {
	Versions []manifestEntry `json:"versions"`
}

// versionInfo is the per-version document the manifest entry's URL points at.
type versionInfo struct {
	Downloads struct {
		Server *struct {
			URL string `json:"url"`
		} `json:"server"`
	} `json:"downloads"`
	JavaVersion struct {
		MajorVersion uint8 `json:"majorVersion"`
	} `json:"javaVersion"`
}

// Resolver fetches the Mojang manifest and individual version documents over
// plain HTTP. A Resolver is safe for concurrent use.
type Resolver struct {
	client *http.Client
}

// NewResolver returns a Resolver using a client with a bounded timeout.
func NewResolver() *Resolver {
	return &Resolver{client: &http.Client{Timeout: 30 * time.Second}}
}

// Resolve looks up id in the version manifest and dereferences its
// per-version document to produce a Descriptor.
func (r *Resolver) Resolve(id string) (*Descriptor, error) {
	id = strings.TrimSpace(id)

	entry, err := r.findEntry(id)
	if err != nil {
		return nil, err
	}

	info, err := r.fetchVersionInfo(entry.URL)
	if err != nil {
		return nil, err
	}

	if info.Downloads.Server == nil {
		return nil, ErrServerInfoNotFound
	}

	return &Descriptor{
		ID:       id,
		JarURL:   info.Downloads.Server.URL,
		JDKMajor: info.JavaVersion.MajorVersion,
	}, nil
}

func (r *Resolver) findEntry(id string) (*manifestEntry, error) {
	resp, err := r.client.Get(manifestURL)
	if err != nil {
		return nil, fmt.Errorf("fetch version manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch version manifest: unexpected status %d", resp.StatusCode)
	}

	var m manifest
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode version manifest: %w", err)
	}

	for _, v := range m.Versions {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, ErrVersionNotFound
}

func (r *Resolver) fetchVersionInfo(url string) (*versionInfo, error) {
	resp, err := r.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch version info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch version info: unexpected status %d", resp.StatusCode)
	}

	var info versionInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode version info: %w", err)
	}
	return &info, nil
}
