package diagnose_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchkit/mccore/pkg/checksum"
	"github.com/launchkit/mccore/pkg/diagnose"
	"github.com/launchkit/mccore/pkg/layout"
)

const versionID = "1.20.1"

var (
	clientJarBytes = []byte("pretend-client-jar-bytes")
	libraryBytes   = []byte("pretend-library-jar-bytes")
	assetBytes     = []byte("pretend-asset-bytes")
)

// buildInstall writes a complete, self-consistent installation (manifest,
// client jar, one library, one asset index naming one asset object) under a
// fresh temp directory and returns its root.
func buildInstall(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	require.NoError(t, os.MkdirAll(layout.VersionRoot(root, versionID), 0o755))
	require.NoError(t, os.WriteFile(layout.VersionJar(root, versionID, layout.JarClient), clientJarBytes, 0o644))

	libRelPath := "com/example/foo/1.0/foo-1.0.jar"
	libPath := layout.Library(root, libRelPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(libPath), 0o755))
	require.NoError(t, os.WriteFile(libPath, libraryBytes, 0o644))

	assetHash := checksum.BytesSHA1(assetBytes)
	assetPath := layout.Asset(root, assetHash)
	require.NoError(t, os.MkdirAll(filepath.Dir(assetPath), 0o755))
	require.NoError(t, os.WriteFile(assetPath, assetBytes, 0o644))

	indexContent, err := json.Marshal(map[string]any{
		"objects": map[string]any{
			"icons/icon.png": map[string]any{"hash": assetHash, "size": len(assetBytes)},
		},
	})
	require.NoError(t, err)
	indexPath := layout.AssetsIndex(root, "5")
	require.NoError(t, os.MkdirAll(filepath.Dir(indexPath), 0o755))
	require.NoError(t, os.WriteFile(indexPath, indexContent, 0o644))

	manifest := map[string]any{
		"id":        versionID,
		"type":      "release",
		"mainClass": "net.minecraft.client.main.Main",
		"assets":    "5",
		"assetIndex": map[string]any{
			"id":        "5",
			"sha1":      checksum.BytesSHA1(indexContent),
			"size":      len(indexContent),
			"totalSize": len(indexContent),
			"url":       "https://example.invalid/5.json",
		},
		"downloads": map[string]any{
			"client": map[string]any{
				"path": versionID + ".jar",
				"sha1": checksum.BytesSHA1(clientJarBytes),
				"size": len(clientJarBytes),
				"url":  "https://example.invalid/" + versionID + ".jar",
			},
		},
		"libraries": []any{
			map[string]any{
				"name": "com.example:foo:1.0",
				"downloads": map[string]any{
					"artifact": map[string]any{
						"path": libRelPath,
						"sha1": checksum.BytesSHA1(libraryBytes),
						"size": len(libraryBytes),
						"url":  "https://example.invalid/" + libRelPath,
					},
				},
			},
		},
		"javaVersion": map[string]any{"component": "jre-legacy", "majorVersion": 8},
	}
	data, err := json.Marshal(manifest)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(layout.VersionJSON(root, versionID), data, 0o644))

	return root
}

func TestDiagnose_CompleteInstallHasNoIssues(t *testing.T) {
	root := buildInstall(t)

	report := diagnose.Diagnose(context.Background(), root, versionID, diagnose.Options{})
	assert.True(t, report.OK(), "unexpected issues: %+v", report.Issues)
}

func TestDiagnose_MissingClientJar(t *testing.T) {
	root := buildInstall(t)
	require.NoError(t, os.Remove(layout.VersionJar(root, versionID, layout.JarClient)))

	report := diagnose.Diagnose(context.Background(), root, versionID, diagnose.Options{})
	require.False(t, report.OK())

	found := false
	for _, issue := range report.Issues {
		if issue.Role == diagnose.RoleClientJar {
			assert.Equal(t, diagnose.Missing, issue.Kind)
			found = true
		}
	}
	assert.True(t, found, "expected a missing client jar issue, got %+v", report.Issues)
}

func TestDiagnose_CorruptedLibrary(t *testing.T) {
	root := buildInstall(t)
	libPath := layout.Library(root, "com/example/foo/1.0/foo-1.0.jar")
	require.NoError(t, os.WriteFile(libPath, []byte("tampered bytes, different length!!"), 0o644))

	report := diagnose.Diagnose(context.Background(), root, versionID, diagnose.Options{})
	require.False(t, report.OK())

	found := false
	for _, issue := range report.Issues {
		if issue.Role == diagnose.RoleLibrary {
			assert.Equal(t, diagnose.Corrupted, issue.Kind)
			found = true
		}
	}
	assert.True(t, found, "expected a corrupted library issue, got %+v", report.Issues)
}

func TestDiagnose_StrictModeTrustsMatchingSizeOverContent(t *testing.T) {
	root := buildInstall(t)
	libPath := layout.Library(root, "com/example/foo/1.0/foo-1.0.jar")
	tampered := make([]byte, len(libraryBytes))
	copy(tampered, libraryBytes)
	tampered[0] ^= 0xFF // same length, different content, same size on disk

	require.NoError(t, os.WriteFile(libPath, tampered, 0o644))

	report := diagnose.Diagnose(context.Background(), root, versionID, diagnose.Options{Strict: true})
	assert.True(t, report.OK(), "strict mode should not hash-check a library whose size matches: %+v", report.Issues)
}

func TestDiagnose_StrictModeHashesAssetObjectEvenWithMatchingSize(t *testing.T) {
	root := buildInstall(t)
	assetHash := checksum.BytesSHA1(assetBytes)
	assetPath := layout.Asset(root, assetHash)
	tampered := make([]byte, len(assetBytes))
	copy(tampered, assetBytes)
	tampered[0] ^= 0xFF // same length, different content, same size on disk

	require.NoError(t, os.WriteFile(assetPath, tampered, 0o644))

	report := diagnose.Diagnose(context.Background(), root, versionID, diagnose.Options{Strict: true})
	require.False(t, report.OK(), "strict mode should always hash an asset object, even one whose size matches")

	found := false
	for _, issue := range report.Issues {
		if issue.Role == diagnose.RoleAssetObject {
			assert.Equal(t, diagnose.Corrupted, issue.Kind)
			found = true
		}
	}
	assert.True(t, found, "expected a corrupted asset object issue, got %+v", report.Issues)
}

func TestDiagnose_NonStrictModeTrustsMatchingAssetSize(t *testing.T) {
	root := buildInstall(t)
	assetHash := checksum.BytesSHA1(assetBytes)
	assetPath := layout.Asset(root, assetHash)
	tampered := make([]byte, len(assetBytes))
	copy(tampered, assetBytes)
	tampered[0] ^= 0xFF // same length, different content, same size on disk

	require.NoError(t, os.WriteFile(assetPath, tampered, 0o644))

	report := diagnose.Diagnose(context.Background(), root, versionID, diagnose.Options{Strict: false})
	assert.True(t, report.OK(), "non-strict mode should not hash-check an asset object whose size matches: %+v", report.Issues)
}

func TestDiagnose_MissingAssetObject(t *testing.T) {
	root := buildInstall(t)
	assetHash := checksum.BytesSHA1(assetBytes)
	require.NoError(t, os.Remove(layout.Asset(root, assetHash)))

	report := diagnose.Diagnose(context.Background(), root, versionID, diagnose.Options{})
	require.False(t, report.OK())

	found := false
	for _, issue := range report.Issues {
		if issue.Role == diagnose.RoleAssetObject {
			assert.Equal(t, diagnose.Missing, issue.Kind)
			found = true
		}
	}
	assert.True(t, found, "expected a missing asset object issue, got %+v", report.Issues)
}

func TestDiagnose_MissingVersionManifest(t *testing.T) {
	root := t.TempDir()

	report := diagnose.Diagnose(context.Background(), root, "does-not-exist", diagnose.Options{})
	require.False(t, report.OK())
	assert.Equal(t, diagnose.RoleVersionJSON, report.Issues[0].Role)
}

func TestDiagnose_CancelledContextSkipsChecks(t *testing.T) {
	root := buildInstall(t)
	require.NoError(t, os.Remove(layout.VersionJar(root, versionID, layout.JarClient)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := diagnose.Diagnose(ctx, root, versionID, diagnose.Options{})
	assert.True(t, report.OK(), "a cancelled context should short-circuit before any file check runs")
}

func TestDiagnose_ConcurrentLibraryFanOutFindsEveryIssue(t *testing.T) {
	root := buildInstall(t)

	// add enough additional libraries that diagnoseLibraries' worker pool
	// actually spans multiple goroutines, leaving every other one missing.
	data, err := os.ReadFile(layout.VersionJSON(root, versionID))
	require.NoError(t, err)
	var manifest map[string]any
	require.NoError(t, json.Unmarshal(data, &manifest))

	libs := manifest["libraries"].([]any)
	const extra = 40
	for i := 0; i < extra; i++ {
		relPath := fmt.Sprintf("com/example/bar%d/1.0/bar%d-1.0.jar", i, i)
		content := []byte(fmt.Sprintf("library contents %d", i))
		full := layout.Library(root, relPath)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		if i%2 == 0 {
			require.NoError(t, os.WriteFile(full, content, 0o644))
		} // else: leave missing entirely

		libs = append(libs, map[string]any{
			"name": fmt.Sprintf("com.example:bar%d:1.0", i),
			"downloads": map[string]any{
				"artifact": map[string]any{
					"path": relPath,
					"sha1": checksum.BytesSHA1(content),
					"size": len(content),
					"url":  "https://example.invalid/" + relPath,
				},
			},
		})
	}
	manifest["libraries"] = libs
	data, err = json.Marshal(manifest)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(layout.VersionJSON(root, versionID), data, 0o644))

	report := diagnose.Diagnose(context.Background(), root, versionID, diagnose.Options{})

	missing := 0
	for _, issue := range report.Issues {
		if issue.Role == diagnose.RoleLibrary && issue.Kind == diagnose.Missing {
			missing++
		}
	}
	assert.Equal(t, extra/2, missing)
}
